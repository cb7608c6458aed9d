package httpx

import (
	"context"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	"github.com/rankedhq/ranked-api/internal/session"
)

// Unexported context key types to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same keys.
type (
	sessionKey     struct{}
	authContextKey struct{}
	orgContextKey  struct{}
)

// SetSessionInContext returns a child context that carries the request session.
func SetSessionInContext(ctx context.Context, sess *session.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, sess)
}

// GetSessionFromContext retrieves the session from the request context, or nil.
func GetSessionFromContext(ctx context.Context) *session.Session {
	if s, ok := ctx.Value(sessionKey{}).(*session.Session); ok {
		return s
	}
	return nil
}

// SetAuthContext stores the resolved auth context. Resolution happens once per
// request; reads after that are pure context lookups, never re-queries.
func SetAuthContext(ctx context.Context, ac domainauth.Context) context.Context {
	return context.WithValue(ctx, authContextKey{}, ac)
}

// GetAuthContext returns the resolved auth context and whether resolution ran.
func GetAuthContext(ctx context.Context) (domainauth.Context, bool) {
	ac, ok := ctx.Value(authContextKey{}).(domainauth.Context)
	return ac, ok
}

// SetOrgContext attaches a resolved organisation scope.
func SetOrgContext(ctx context.Context, oc *domainauth.OrgContext) context.Context {
	if oc == nil {
		return ctx
	}
	return context.WithValue(ctx, orgContextKey{}, oc)
}

// GetOrgContext returns the organisation scope, or nil when the request did
// not carry an org selector.
func GetOrgContext(ctx context.Context) *domainauth.OrgContext {
	if oc, ok := ctx.Value(orgContextKey{}).(*domainauth.OrgContext); ok {
		return oc
	}
	return nil
}
