package config

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DefaultSessionTTLSeconds is the rolling session lifetime used when none is configured.
const DefaultSessionTTLSeconds = 24 * 60 * 60

// SessionConfig contains session cookie and lifetime configuration.
//
// The encryption key is a secret: it must never be logged or echoed back
// in any response or error message.
type SessionConfig struct {
	// CookieName is the name of the encrypted session cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"ranked_session"`

	// KeyBase64 is the base64-encoded 32-byte AES key for the session codec.
	KeyBase64 string `env:"KEY_BASE64,required"`

	// TTLSeconds is the rolling session lifetime. Each valid request extends
	// the session (and cookie max-age) by this amount when Rolling is true.
	TTLSeconds int `env:"TTL_SECONDS" envDefault:"86400"`

	// AbsoluteTTLSeconds is the hard cap on session age measured from login,
	// regardless of activity. Defaults to TTLSeconds when unset.
	AbsoluteTTLSeconds int `env:"ABSOLUTE_TTL_SECONDS"`

	// Rolling enables sliding expiration: every valid request resets the
	// session expiry and cookie max-age to TTLSeconds from now.
	Rolling bool `env:"ROLLING" envDefault:"true"`

	// CookieSecure marks the session cookie Secure. When secure, SameSite is
	// "none" (required for cross-site use); otherwise "lax". Defaults to true
	// outside development mode.
	CookieSecure *bool `env:"COOKIE_SECURE"`

	// CookieDomain is the domain attribute for the session cookie.
	// Leave empty to scope the cookie to the request host.
	CookieDomain string `env:"COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize(isDev bool) {
	if s.CookieName == "" {
		s.CookieName = "ranked_session"
	}
	if s.TTLSeconds <= 0 {
		s.TTLSeconds = DefaultSessionTTLSeconds
	}
	if s.AbsoluteTTLSeconds <= 0 {
		s.AbsoluteTTLSeconds = s.TTLSeconds
	}
	if s.CookieSecure == nil {
		secure := !isDev
		s.CookieSecure = &secure
	}

	// A cookie domain that is a bare public suffix (e.g. "com", "co.uk")
	// would be rejected by browsers anyway; treat it as unset.
	if d := strings.TrimPrefix(strings.ToLower(s.CookieDomain), "."); d != "" {
		if suffix, _ := publicsuffix.PublicSuffix(d); suffix == d {
			s.CookieDomain = ""
		}
	}
}

// Secure reports the resolved Secure attribute for the session cookie.
func (s *SessionConfig) Secure() bool {
	return s.CookieSecure != nil && *s.CookieSecure
}
