package httpx

import (
	"log/slog"
	"net/http"

	"github.com/rankedhq/ranked-api/internal/session"
)

// Session returns the middleware that decodes the inbound session cookie and
// applies the session's cookie directive to the response.
//
// The directive is computed lazily: a sessionWriter defers it until the first
// header write, so everything downstream (auth resolver, CSRF guard, handlers)
// may keep mutating the session and the final state is what gets encoded.
// Stages never touch Set-Cookie themselves.
func Session(store *session.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)

			sw := &sessionWriter{
				ResponseWriter: w,
				store:          store,
				sess:           sess,
				logger:         logger,
			}

			ctx := SetSessionInContext(r.Context(), sess)
			next.ServeHTTP(sw, r.WithContext(ctx))
			sw.flush()
		})
	}
}

// sessionWriter writes the session cookie directive just before the response
// headers are committed.
type sessionWriter struct {
	http.ResponseWriter
	store   *session.Store
	sess    *session.Session
	logger  *slog.Logger
	flushed bool
	wrote   bool
}

func (w *sessionWriter) WriteHeader(status int) {
	w.flush()
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// flush applies the cookie directive once. Safe to call after the handler in
// case nothing was written.
func (w *sessionWriter) flush() {
	if w.flushed {
		return
	}
	w.flushed = true

	cookie, err := w.store.Directive(w.sess)
	if err != nil {
		// Encoding failure must not take the response down; the client
		// just keeps its previous cookie.
		if w.logger != nil {
			w.logger.Error("failed to encode session cookie", slog.Any("error", err))
		}
		return
	}
	if cookie != nil {
		http.SetCookie(w.ResponseWriter, cookie)
	}
}
