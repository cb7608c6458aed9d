package session

import "time"

// Well-known bag keys. The codec does not interpret them; typed accessors
// below exist for the fields the auth pipeline reads.
const (
	KeyMemberID  = "memberId"
	KeyIssuedAt  = "sessionIssuedAt"
	KeyCSRFToken = "csrfToken"
)

// Session is the mutable key-value bag for the duration of one request.
// It tracks whether it was mutated (needs re-encoding into the outbound
// cookie) or deleted (outbound cookie must be cleared).
type Session struct {
	values    map[string]any
	expiresAt time.Time // server-enforced validity, carried inside the encrypted payload
	dirty     bool
	deleted   bool
}

// New returns an empty, clean session.
func New() *Session {
	return &Session{values: make(map[string]any)}
}

// FromValues returns a clean session holding the given values, as if they had
// been decoded from an inbound cookie.
func FromValues(values map[string]any) *Session {
	s := New()
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Get returns the value stored under key, or nil/false when absent.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the string stored under key, or "" when absent or not a string.
func (s *Session) GetString(key string) string {
	if v, ok := s.values[key]; ok {
		if str, isStr := v.(string); isStr {
			return str
		}
	}
	return ""
}

// GetInt64 returns the integer stored under key. JSON round-tripping turns
// numbers into float64, so both forms are accepted.
func (s *Session) GetInt64(key string) (int64, bool) {
	switch v := s.values[key].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Set stores a value and marks the session dirty.
func (s *Session) Set(key string, value any) {
	s.values[key] = value
	s.dirty = true
	s.deleted = false
}

// Delete clears the entire bag and instructs the outbound cookie to be removed.
func (s *Session) Delete() {
	s.values = make(map[string]any)
	s.deleted = true
	s.dirty = true
}

// Touch extends the server-enforced expiry to ttl from now and marks the
// session dirty so the outbound cookie's max-age is rewritten.
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.expiresAt = now.Add(ttl)
	s.dirty = true
}

// Dirty reports whether the session needs to be re-encoded into a cookie.
func (s *Session) Dirty() bool { return s.dirty }

// Deleted reports whether the outbound cookie must be cleared.
func (s *Session) Deleted() bool { return s.deleted }

// IsEmpty reports whether the bag holds no values.
func (s *Session) IsEmpty() bool { return len(s.values) == 0 }

// MemberID returns the identity reference, or "" for an anonymous session.
func (s *Session) MemberID() string { return s.GetString(KeyMemberID) }

// SetMemberID stores the identity reference.
func (s *Session) SetMemberID(id string) { s.Set(KeyMemberID, id) }

// IssuedAt returns the login timestamp in epoch milliseconds.
func (s *Session) IssuedAt() (int64, bool) { return s.GetInt64(KeyIssuedAt) }

// SetIssuedAt stores the login timestamp in epoch milliseconds.
func (s *Session) SetIssuedAt(epochMillis int64) { s.Set(KeyIssuedAt, epochMillis) }

// CSRFToken returns the stored CSRF token, or "" when none exists yet.
func (s *Session) CSRFToken() string { return s.GetString(KeyCSRFToken) }

// SetCSRFToken stores the CSRF token.
func (s *Session) SetCSRFToken(token string) { s.Set(KeyCSRFToken, token) }
