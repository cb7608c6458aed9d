package httpx

import (
	"log/slog"
	"net/http"

	"github.com/rankedhq/ranked-api/internal/service"
)

// AddressHandlers serves the member address endpoints.
type AddressHandlers struct {
	Me     *service.MeService
	Logger *slog.Logger
}

// List handles GET /member-addresses. Runs behind RequireAuth.
func (h *AddressHandlers) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := GetAuthContext(r.Context())

	addresses, err := h.Me.ListAddresses(r.Context(), ac.Member.InternalID)
	if err != nil {
		h.Logger.Error("address listing failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"addresses": addresses})
}
