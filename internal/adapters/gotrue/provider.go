package gotrue

// Package gotrue adapts a GoTrue-style identity service to the
// ports.IdentityProvider interface. Password sign-in goes through the
// provider's OAuth token endpoint; access tokens are verified locally,
// either HS256 with a shared secret or RS256 against the provider JWKS.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"

	"github.com/rankedhq/ranked-api/config"
	"github.com/rankedhq/ranked-api/internal/ports"
)

// Provider implements ports.IdentityProvider against a GoTrue-compatible API.
type Provider struct {
	cfg        config.IdPConfig
	baseURL    string
	httpClient *http.Client
	oauth      *oauth2.Config

	// verifier is non-nil when RS256/JWKS verification is configured.
	verifier *gooidc.IDTokenVerifier
}

// NewProvider builds a Provider from IdP configuration. Exactly one of
// JWTSecret or DiscoveryURL must be usable for token verification.
func NewProvider(ctx context.Context, cfg config.IdPConfig) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("idp base URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, errors.New("idp anon key is required")
	}
	if cfg.JWTSecret == "" && cfg.DiscoveryURL == "" {
		return nil, errors.New("either idp JWT secret or discovery URL is required")
	}
	for _, expr := range []string{cfg.UsernamePath, cfg.DisplayNamePath} {
		if expr == "" {
			continue
		}
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, fmt.Errorf("compile claim path %q: %w", expr, err)
		}
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")
	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: &apikeyTransport{apikey: cfg.AnonKey, next: http.DefaultTransport},
	}

	p := &Provider{
		cfg:        cfg,
		baseURL:    base,
		httpClient: httpClient,
		oauth: &oauth2.Config{
			ClientID: cfg.AnonKey,
			Endpoint: oauth2.Endpoint{
				TokenURL:  base + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}

	if cfg.DiscoveryURL != "" {
		issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
		issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
		octx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		op, err := gooidc.NewProvider(octx, issuer)
		if err != nil {
			return nil, fmt.Errorf("oidc new provider: %w", err)
		}
		p.verifier = op.Verifier(&gooidc.Config{ClientID: cfg.Audience})
	}

	return p, nil
}

// SignIn exchanges email/password credentials for an access token at the
// provider's token endpoint and returns the identity the token names.
func (p *Provider) SignIn(ctx context.Context, email, password string) (ports.ProviderIdentity, error) {
	octx := context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.oauth.PasswordCredentialsToken(octx, email, password)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil && rErr.Response.StatusCode < http.StatusInternalServerError {
			return ports.ProviderIdentity{}, ports.ErrInvalidCredentials
		}
		return ports.ProviderIdentity{}, fmt.Errorf("password grant: %w", err)
	}
	return p.VerifyAccessToken(ctx, token.AccessToken)
}

// VerifyAccessToken validates a provider access token and extracts the
// identity from its claims.
func (p *Provider) VerifyAccessToken(ctx context.Context, accessToken string) (ports.ProviderIdentity, error) {
	if accessToken == "" {
		return ports.ProviderIdentity{}, ports.ErrInvalidToken
	}

	var claims map[string]any
	if p.verifier != nil {
		idTok, err := p.verifier.Verify(ctx, accessToken)
		if err != nil {
			return ports.ProviderIdentity{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
		}
		if err := idTok.Claims(&claims); err != nil {
			return ports.ProviderIdentity{}, fmt.Errorf("%w: decode claims: %w", ports.ErrInvalidToken, err)
		}
	} else {
		mc := jwt.MapClaims{}
		parser := jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithAudience(p.cfg.Audience),
			jwt.WithExpirationRequired(),
		)
		if _, err := parser.ParseWithClaims(accessToken, mc, func(t *jwt.Token) (interface{}, error) {
			return []byte(p.cfg.JWTSecret), nil
		}); err != nil {
			return ports.ProviderIdentity{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
		}
		claims = mc
	}

	ident := p.identityFromClaims(claims)
	if ident.Subject == "" {
		return ports.ProviderIdentity{}, fmt.Errorf("%w: missing sub claim", ports.ErrInvalidToken)
	}
	return ident, nil
}

func (p *Provider) identityFromClaims(claims map[string]any) ports.ProviderIdentity {
	ident := ports.ProviderIdentity{
		Subject: stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
	}
	ident.Username = searchString(p.cfg.UsernamePath, claims)
	ident.DisplayName = searchString(p.cfg.DisplayNamePath, claims)
	return ident
}

// adminUser is the provider's admin user resource shape.
type adminUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// Register creates a provider user through the privileged admin API.
func (p *Provider) Register(ctx context.Context, in ports.RegisterInput) (ports.ProviderIdentity, error) {
	if p.cfg.ServiceRoleKey == "" {
		return ports.ProviderIdentity{}, errors.New("service role key is not configured")
	}

	body, err := json.Marshal(map[string]any{
		"email":         in.Email,
		"password":      in.Password,
		"email_confirm": true,
		"user_metadata": map[string]any{
			"username":     in.Username,
			"display_name": in.DisplayName,
		},
	})
	if err != nil {
		return ports.ProviderIdentity{}, fmt.Errorf("encode admin user: %w", err)
	}

	var user adminUser
	if err := p.adminDo(ctx, http.MethodPost, "/admin/users", body, &user); err != nil {
		return ports.ProviderIdentity{}, err
	}

	return ports.ProviderIdentity{
		Subject:     user.ID,
		Email:       user.Email,
		Username:    searchString(p.cfg.UsernamePath, map[string]any{"user_metadata": user.UserMetadata}),
		DisplayName: searchString(p.cfg.DisplayNamePath, map[string]any{"user_metadata": user.UserMetadata}),
	}, nil
}

// DeleteUser removes a provider user. A missing user is treated as success
// so compensating deletes stay idempotent.
func (p *Provider) DeleteUser(ctx context.Context, subject string) error {
	if subject == "" {
		return errors.New("subject is required")
	}
	err := p.adminDo(ctx, http.MethodDelete, "/admin/users/"+subject, nil, nil)
	var sErr *statusError
	if errors.As(err, &sErr) && sErr.status == http.StatusNotFound {
		return nil
	}
	return err
}

// statusError carries a non-2xx admin API response.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("idp admin API returned %d: %s", e.status, e.body)
}

func (p *Provider) adminDo(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build admin request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.ServiceRoleKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("admin request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode admin response: %w", err)
	}
	return nil
}

// apikeyTransport attaches the provider's public API key to every request.
type apikeyTransport struct {
	apikey string
	next   http.RoundTripper
}

func (t *apikeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("apikey", t.apikey)
	return t.next.RoundTrip(clone)
}

// searchString evaluates a JMESPath expression against a claims document and
// returns the result when it is a non-empty string.
func searchString(expr string, doc map[string]any) string {
	if expr == "" {
		return ""
	}
	v, err := jmespath.Search(expr, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func stringClaim(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}
