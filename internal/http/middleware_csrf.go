package httpx

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/rankedhq/ranked-api/internal/observability/metrics"
	"github.com/rankedhq/ranked-api/internal/session"
)

// unsafeMethods are the state-changing methods the CSRF guard applies to.
var unsafeMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// CSRFGuard enforces the double-submit check: the token stored inside the
// encrypted session must be echoed back in the request header on every unsafe
// request. Must run after AuthContext.
//
// The guard only acts on authenticated sessions — an anonymous request falls
// through to downstream authorization, which rejects it as unauthenticated
// anyway. When the session has no token yet, one is generated and stored; the
// generation alone never satisfies the current request's check, because the
// client cannot have echoed a token it has not seen.
func CSRFGuard(m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !unsafeMethods[r.Method] || csrfExemptPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			sess := GetSessionFromContext(r.Context())
			if sess == nil || sess.MemberID() == "" {
				next.ServeHTTP(w, r)
				return
			}

			stored := sess.CSRFToken()
			if stored == "" {
				token, err := session.NewCSRFToken()
				if err != nil {
					logger.Error("csrf token generation failed", slog.Any("error", err))
					WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: codeInternal})
					return
				}
				sess.SetCSRFToken(token)
				countCSRFRejection(m, "missing")
				WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: codeCSRF})
				return
			}

			// Only the first header value counts when the header is repeated.
			presented := r.Header.Get(CSRFHeaderName)
			if presented == "" {
				countCSRFRejection(m, "missing")
				WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: codeCSRF})
				return
			}
			if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
				countCSRFRejection(m, "mismatch")
				WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: codeCSRF})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func countCSRFRejection(m *metrics.Metrics, reason string) {
	if m == nil {
		return
	}
	m.CSRFRejections.WithLabelValues(reason).Inc()
}
