package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	obserrors "github.com/rankedhq/ranked-api/internal/observability/errors"
	"github.com/rankedhq/ranked-api/internal/service"
)

// AuthContext returns the middleware that resolves the auth context once per
// request and stores it in the request context. Must run after Session.
//
// A store failure fails the request with a 500; an unreachable database must
// never look like a logout to the client.
func AuthContext(resolver *service.AuthContextService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSessionFromContext(r.Context())
			if sess == nil {
				// Session middleware not mounted; treat as anonymous.
				ctx := SetAuthContext(r.Context(), domainauth.Unauthenticated())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ac, err := resolver.Resolve(r.Context(), sess)
			if err != nil {
				logger.Error("auth context resolution failed",
					slog.String("path", r.URL.Path),
					slog.String("error_class", obserrors.Classify(err)),
					slog.Any("error", err))
				WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
				return
			}

			ctx := SetAuthContext(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests whose auth context is not Authenticated.
// Expired sessions get a reason-specific wire code so the client can
// distinguish "log in again" from a plain 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := GetAuthContext(r.Context())
		if !ok || !ac.IsAuthenticated() {
			writeUnauthenticated(w, ac)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeUnauthenticated emits the 401 for a missing or expired identity.
func writeUnauthenticated(w http.ResponseWriter, ac domainauth.Context) {
	code := codeUnauthorized
	if ac.State == domainauth.StateExpired && ac.Reason == domainauth.ExpiredAbsoluteTTL {
		code = codeSessionExpiredAbs
	}
	WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: code})
}
