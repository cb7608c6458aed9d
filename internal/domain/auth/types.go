package auth

// Package auth contains domain-level types for identity, sessions, and
// organisation scopes. It is pure and free of framework/adapter concerns.

// Member is the durable identity record. The core only ever reads it by its
// internal identifier; writes happen in the login/registration flow.
type Member struct {
	InternalID  string `json:"internal_id"  db:"internal_id"`
	Email       string `json:"email"        db:"email"`
	Username    string `json:"username"     db:"username"`
	DisplayName string `json:"display_name" db:"display_name"`
}

// ExpiredReason explains why a session was invalidated during resolution.
type ExpiredReason string

const (
	// ExpiredMissingIssuedAt marks a session carrying a member but no issuance timestamp.
	ExpiredMissingIssuedAt ExpiredReason = "MISSING_ISSUED_AT"
	// ExpiredAbsoluteTTL marks a session older than the absolute TTL.
	ExpiredAbsoluteTTL ExpiredReason = "ABSOLUTE_TTL"
	// ExpiredMissingMember marks a session whose member row no longer exists.
	ExpiredMissingMember ExpiredReason = "MISSING_MEMBER"
)

// AuthState is the outcome of resolving a session into an identity.
type AuthState int

const (
	// StateUnauthenticated means the session carried no member reference.
	StateUnauthenticated AuthState = iota
	// StateExpired means the session carried a member reference but failed
	// lifetime or integrity checks; Reason says which.
	StateExpired
	// StateAuthenticated means the session resolved to a live member.
	StateAuthenticated
)

// Context is the request-scoped resolved identity. It is derived fresh for
// each request and never persisted.
type Context struct {
	State  AuthState
	Reason ExpiredReason // set only when State == StateExpired
	Member *Member       // set only when State == StateAuthenticated
}

// Unauthenticated returns an anonymous auth context.
func Unauthenticated() Context {
	return Context{State: StateUnauthenticated}
}

// Expired returns an expired auth context with the given reason.
func Expired(reason ExpiredReason) Context {
	return Context{State: StateExpired, Reason: reason}
}

// Authenticated returns an auth context for the given member.
func Authenticated(m *Member) Context {
	return Context{State: StateAuthenticated, Member: m}
}

// IsAuthenticated reports whether the context resolved to a live member.
func (c Context) IsAuthenticated() bool { return c.State == StateAuthenticated && c.Member != nil }

// Organisation is an organisation record.
type Organisation struct {
	ID   string `json:"id"   db:"id"`
	Slug string `json:"slug" db:"slug"`
	Name string `json:"name" db:"name"`
}

// Membership is the member ↔ organisation relation. Roles is the raw,
// possibly-empty multi-valued role set as stored; a single effective role is
// derived from it with PickRole.
type Membership struct {
	OrganisationID string   `json:"organisation_id" db:"organisation_id"`
	Roles          []string `json:"roles"           db:"roles"`
}

// OrgContext is the request-scoped organisation authorization scope: one
// organisation and the caller's effective role within it. It is only attached
// when the caller holds an ACTIVE membership.
type OrgContext struct {
	Org  Organisation
	Role Role
}
