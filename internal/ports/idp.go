package ports

import (
	"context"
	"errors"
)

// Sentinel errors returned by IdentityProvider implementations.
var (
	// ErrInvalidCredentials marks a failed email/password sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken marks an access token that failed verification.
	ErrInvalidToken = errors.New("invalid access token")
)

// ProviderIdentity is the authenticated principal as reported by the external
// identity provider. Subject is the provider's stable user id; profile fields
// are best-effort and may be empty.
type ProviderIdentity struct {
	Subject     string
	Email       string
	Username    string
	DisplayName string
}

// RegisterInput groups parameters for IdentityProvider.Register.
type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

// IdentityProvider authenticates principals against the external auth service.
// All credential handling stays behind this boundary; the rest of the system
// only ever sees ProviderIdentity values.
type IdentityProvider interface {
	// SignIn authenticates email/password credentials.
	// Invalid credentials return ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (ProviderIdentity, error)

	// VerifyAccessToken validates a provider-issued access token and returns
	// the identity it names. Invalid or expired tokens return ErrInvalidToken.
	VerifyAccessToken(ctx context.Context, accessToken string) (ProviderIdentity, error)

	// Register creates a new provider user (privileged operation).
	Register(ctx context.Context, in RegisterInput) (ProviderIdentity, error)

	// DeleteUser removes a provider user. Used as a compensating action when
	// the local member insert fails after registration.
	DeleteUser(ctx context.Context, subject string) error
}
