package httpx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rankedhq/ranked-api/internal/session"
)

// newTestSessionStore builds a session store with a fixed key and short TTLs
// suitable for handler tests.
func newTestSessionStore(t *testing.T) *session.Store {
	t.Helper()
	key := bytes.Repeat([]byte{0x2a}, 32)
	store, err := session.NewStore(key, session.Config{
		CookieName: "ranked_session",
		TTL:        30 * time.Minute,
	})
	require.NoError(t, err)
	return store
}

// testLogger discards log output but keeps the slog wiring realistic.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

// errBody is the wire error envelope.
type errBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeErrBody(t *testing.T, w *httptest.ResponseRecorder) errBody {
	t.Helper()
	var body errBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// sessionCookie pulls the session cookie from a recorded response, or nil.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder, store *session.Store) *http.Cookie {
	t.Helper()
	resp := w.Result()
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == store.Config().CookieName {
			return c
		}
	}
	return nil
}

// authedSessionCookie runs a value-setting request through the Session
// middleware and returns the resulting encrypted cookie. The standard way for
// tests to mint a cookie that Load will accept.
func authedSessionCookie(t *testing.T, store *session.Store, values map[string]any) *http.Cookie {
	t.Helper()
	handler := Session(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSessionFromContext(r.Context())
		for k, v := range values {
			sess.Set(k, v)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/mint", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	cookie := sessionCookie(t, w, store)
	require.NotNil(t, cookie, "expected a session cookie to be issued")
	return cookie
}
