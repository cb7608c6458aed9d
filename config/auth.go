package config

// IdPConfig contains configuration for the external identity provider.
//
// The provider is a GoTrue-style auth service: password sign-in happens at its
// OAuth-compatible token endpoint, and access tokens are either HS256 JWTs
// signed with JWTSecret or RS256 JWTs verified against the provider's JWKS
// (via OIDC discovery when DiscoveryURL is set).
type IdPConfig struct {
	// BaseURL is the identity provider's base URL (e.g. "https://auth.example.com").
	BaseURL string `env:"BASE_URL,required"`

	// AnonKey is the provider's public API key, sent with every request.
	AnonKey string `env:"ANON_KEY,required"`

	// ServiceRoleKey is the privileged API key used for admin user creation
	// during registration and for compensating deletes.
	ServiceRoleKey string `env:"SERVICE_ROLE_KEY"`

	// JWTSecret is the shared HS256 secret for local access-token verification.
	// When empty, DiscoveryURL must be set and tokens are verified via JWKS.
	JWTSecret string `env:"JWT_SECRET"`

	// DiscoveryURL is the OIDC discovery/issuer URL for RS256 verification.
	DiscoveryURL string `env:"DISCOVERY_URL"`

	// Audience is the expected "aud" claim on access tokens.
	Audience string `env:"AUDIENCE" envDefault:"authenticated"`

	// UsernamePath and DisplayNamePath are JMESPath expressions applied to the
	// provider's user-metadata document to extract profile fields.
	UsernamePath    string `env:"USERNAME_PATH"     envDefault:"user_metadata.username"`
	DisplayNamePath string `env:"DISPLAY_NAME_PATH" envDefault:"user_metadata.display_name"`
}
