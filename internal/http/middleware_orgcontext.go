package httpx

import (
	"log/slog"
	"net/http"

	apperrors "github.com/rankedhq/ranked-api/internal/errors"
	obserrors "github.com/rankedhq/ranked-api/internal/observability/errors"
	"github.com/rankedhq/ranked-api/internal/service"
)

// OrgContext returns the middleware that resolves an organisation scope when
// the request carries the org selector header. Requests without the header
// pass through with no org context attached. Must run after AuthContext.
func OrgContext(resolver *service.OrgContextService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawOrgID := r.Header.Get(OrgHeaderName)
			if rawOrgID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ac, ok := GetAuthContext(r.Context())
			if !ok || !ac.IsAuthenticated() {
				writeUnauthenticated(w, ac)
				return
			}

			oc, err := resolver.Resolve(r.Context(), ac.Member.InternalID, rawOrgID)
			if err != nil {
				switch {
				case apperrors.IsValidation(err):
					WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: codeInvalidOrgID, Message: "invalid organisation id"})
				case apperrors.IsForbidden(err):
					WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: codeForbiddenOrg})
				case apperrors.IsNotFound(err):
					WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: codeOrgNotFound})
				default:
					logger.Error("org context resolution failed",
						slog.String("path", r.URL.Path),
						slog.String("error_class", obserrors.Classify(err)),
						slog.Any("error", err))
					WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(SetOrgContext(r.Context(), oc)))
		})
	}
}

// RequireOrg rejects requests that reached an org-scoped handler without an
// organisation context: 401 when unauthenticated, 400 when authenticated but
// no selector was sent.
func RequireOrg(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := GetAuthContext(r.Context())
		if !ok || !ac.IsAuthenticated() {
			writeUnauthenticated(w, ac)
			return
		}
		if GetOrgContext(r.Context()) == nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: codeMissingOrgContext, Message: "organisation context required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
