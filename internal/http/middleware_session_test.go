package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware_UntouchedSessionSetsNoCookie(t *testing.T) {
	store := newTestSessionStore(t)

	handler := Session(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, GetSessionFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sessionCookie(t, w, store), "a read-only request must not emit Set-Cookie")
}

func TestSessionMiddleware_MutatedSessionRoundTrips(t *testing.T) {
	store := newTestSessionStore(t)
	cookie := authedSessionCookie(t, store, map[string]any{"memberId": "mem-1"})
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	// Second request presents the cookie; the decoded bag holds the value.
	var got string
	handler := Session(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetSessionFromContext(r.Context()).MemberID()
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "mem-1", got)
	assert.Nil(t, sessionCookie(t, w, store), "an unchanged session must not be re-issued")
}

func TestSessionMiddleware_DeletedSessionClearsCookie(t *testing.T) {
	store := newTestSessionStore(t)
	cookie := authedSessionCookie(t, store, map[string]any{"memberId": "mem-1"})

	handler := Session(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetSessionFromContext(r.Context()).Delete()
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	cleared := sessionCookie(t, w, store)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestSessionMiddleware_GarbageCookieYieldsEmptySession(t *testing.T) {
	store := newTestSessionStore(t)

	handler := Session(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := GetSessionFromContext(r.Context())
		assert.True(t, sess.IsEmpty())
		assert.Empty(t, sess.MemberID())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: store.Config().CookieName, Value: "not-a-valid-ciphertext"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionMiddleware_CookieWrittenBeforeBody(t *testing.T) {
	store := newTestSessionStore(t)

	handler := Session(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetSessionFromContext(r.Context()).Set("memberId", "mem-1")
		// Write the body without an explicit WriteHeader; the directive must
		// still make it into the committed headers.
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sessionCookie(t, w, store))
}
