package session

import (
	"encoding/json"
	"net/http"
	"time"
)

// Config groups cookie and lifetime settings for the store.
type Config struct {
	// CookieName is the session cookie name.
	CookieName string
	// TTL is the rolling session validity window; it is also the browser-visible
	// max-age. The two are logically separate knobs configured with one value.
	TTL time.Duration
	// Secure marks the cookie Secure. SameSite follows it: "none" when secure
	// (required for cross-site use), "lax" otherwise.
	Secure bool
	// Domain is the cookie domain attribute; empty scopes it to the request host.
	Domain string
}

// Store turns inbound cookies into session bags and session bags back into
// outbound cookie directives. It holds the process-wide encryption key and is
// safe for concurrent use.
type Store struct {
	codec *codec
	cfg   Config
	now   func() time.Time
}

// NewStore creates a Store from a raw 32-byte key.
func NewStore(key []byte, cfg Config) (*Store, error) {
	c, err := newCodec(key)
	if err != nil {
		return nil, err
	}
	return &Store{codec: c, cfg: cfg, now: time.Now}, nil
}

// WithNow overrides the store's clock. Useful for tests.
func (st *Store) WithNow(now func() time.Time) *Store {
	st.now = now
	return st
}

// Config returns the store's cookie configuration.
func (st *Store) Config() Config { return st.cfg }

// payload is the encrypted wire shape: the bag plus the server-enforced expiry.
type payload struct {
	Values    map[string]any `json:"v"`
	ExpiresAt int64          `json:"exp"` // unix seconds
}

// Load decodes the inbound session cookie into a bag. A missing cookie, a
// failed decryption, a bad signature, or an expired payload all yield an
// empty bag; this never surfaces an error to the caller.
func (st *Store) Load(r *http.Request) *Session {
	sess := New()
	sess.expiresAt = st.now().Add(st.cfg.TTL)

	cookie, err := r.Cookie(st.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return sess
	}
	plaintext, err := st.codec.open(cookie.Value)
	if err != nil {
		return sess
	}
	var p payload
	if err := json.Unmarshal(plaintext, &p); err != nil {
		return sess
	}
	if p.ExpiresAt > 0 && st.now().After(time.Unix(p.ExpiresAt, 0)) {
		return sess
	}
	if p.Values != nil {
		sess.values = p.Values
	}
	if p.ExpiresAt > 0 {
		sess.expiresAt = time.Unix(p.ExpiresAt, 0)
	}
	return sess
}

// Directive computes the outbound cookie for a session, or nil when no cookie
// needs to be written. A deleted (or emptied) session produces a clearing
// cookie with the exact attributes the cookie is set with; clearing with
// different attributes would be a browser no-op.
func (st *Store) Directive(sess *Session) (*http.Cookie, error) {
	if !sess.dirty {
		return nil, nil
	}
	if sess.deleted || sess.IsEmpty() {
		return st.clearingCookie(), nil
	}

	value, err := st.codec.seal(mustMarshal(payload{
		Values:    sess.values,
		ExpiresAt: sess.expiresAt.Unix(),
	}))
	if err != nil {
		return nil, err
	}

	c := st.baseCookie()
	c.Value = value
	c.MaxAge = int(sess.expiresAt.Sub(st.now()).Round(time.Second).Seconds())
	if c.MaxAge <= 0 {
		c.MaxAge = int(st.cfg.TTL.Seconds())
	}
	return c, nil
}

// ClearingCookie returns a directive that removes the session cookie.
func (st *Store) ClearingCookie() *http.Cookie { return st.clearingCookie() }

func (st *Store) clearingCookie() *http.Cookie {
	c := st.baseCookie()
	c.Value = ""
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0).UTC()
	return c
}

func (st *Store) baseCookie() *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if st.cfg.Secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     st.cfg.CookieName,
		Path:     "/",
		Domain:   st.cfg.Domain,
		HttpOnly: true,
		Secure:   st.cfg.Secure,
		SameSite: sameSite,
	}
}

func mustMarshal(p payload) []byte {
	// The payload is a map of JSON-safe values written by this package; a
	// marshal failure would be a programming error.
	b, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	return b
}
