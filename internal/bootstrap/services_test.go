package bootstrap

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rankedhq/ranked-api/config"
)

func TestBuildSessionStore(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))

	store, err := buildSessionStore(config.SessionConfig{
		CookieName: "ranked_session",
		KeyBase64:  key,
		TTLSeconds: 3600,
	})
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, "ranked_session", store.Config().CookieName)
}

func TestBuildSessionStore_BadBase64(t *testing.T) {
	_, err := buildSessionStore(config.SessionConfig{KeyBase64: "%%%not-base64%%%"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "%%%", "key material must not leak into errors")
}

func TestBuildSessionStore_WrongKeyLength(t *testing.T) {
	short := base64.StdEncoding.EncodeToString(make([]byte, 16))
	_, err := buildSessionStore(config.SessionConfig{KeyBase64: short, TTLSeconds: 3600})
	require.Error(t, err)
}
