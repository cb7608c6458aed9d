package httpx

import (
	"log/slog"
	"net/http"

	apperrors "github.com/rankedhq/ranked-api/internal/errors"
	"github.com/rankedhq/ranked-api/internal/service"
)

// MeHandlers serves the profile endpoints.
type MeHandlers struct {
	Me     *service.MeService
	Logger *slog.Logger
}

// GetMe handles GET /me. Runs behind RequireAuth.
func (h *MeHandlers) GetMe(w http.ResponseWriter, r *http.Request) {
	ac, _ := GetAuthContext(r.Context())

	payload, err := h.Me.BuildPayload(r.Context(), ac.Member)
	if err != nil {
		h.Logger.Error("profile payload failed", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		return
	}

	// Session-bound response: must never be cached or shared across cookies.
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Add("Vary", "Cookie")
	WriteJSON(w, http.StatusOK, payload)
}

type setActiveOrgRequest struct {
	OrganisationID *string `json:"organisationId"`
}

// SetActiveOrganisation handles POST /me/active-organisation. A null id
// clears the selection. Runs behind RequireAuth.
func (h *MeHandlers) SetActiveOrganisation(w http.ResponseWriter, r *http.Request) {
	ac, _ := GetAuthContext(r.Context())

	var req setActiveOrgRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Me.SetActiveOrganisation(r.Context(), ac.Member.InternalID, req.OrganisationID); err != nil {
		switch {
		case apperrors.IsValidation(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: codeInvalidOrgID, Message: "invalid organisation id"})
		case apperrors.IsForbidden(err):
			WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: codeForbiddenOrg})
		default:
			h.Logger.Error("set active organisation failed", slog.Any("error", err))
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
