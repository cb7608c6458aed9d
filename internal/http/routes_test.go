package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutes_Healthz(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sessionCookie(t, w, f.store))
}

func TestRoutes_UnknownPath(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/auth/login", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
