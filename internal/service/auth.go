package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	apperrors "github.com/rankedhq/ranked-api/internal/errors"
	"github.com/rankedhq/ranked-api/internal/observability/metrics"
	"github.com/rankedhq/ranked-api/internal/ports"
)

// ProviderName is the auth_provider value recorded for members created
// through the built-in identity service.
const ProviderName = "gotrue"

const (
	minPasswordLength = 8
	minUsernameLength = 3
	maxUsernameLength = 30
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.IdentityProvider
	Members  ports.MemberStore
	Metrics  *metrics.Metrics
}

// AuthService orchestrates registration and sign-in flows: credentials go to
// the identity provider, identities are upserted into the members table, and
// the resulting member is what sessions reference.
type AuthService struct {
	provider ports.IdentityProvider
	members  ports.MemberStore
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Provider == nil {
		panic("auth: Provider is required")
	}
	if opts.Members == nil {
		panic("auth: Members is required")
	}
	return &AuthService{
		provider: opts.Provider,
		members:  opts.Members,
		metrics:  opts.Metrics,
		logger:   slog.Default().With("component", "auth"),
	}
}

// RegisterInput groups parameters for Register.
type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

func (in *RegisterInput) normalize() {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
}

func (in RegisterInput) validate() error {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperrors.ValidationField("email", "invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return apperrors.ValidationField("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(in.Username) < minUsernameLength || len(in.Username) > maxUsernameLength {
		return apperrors.ValidationField("username", fmt.Sprintf("username must be %d-%d characters", minUsernameLength, maxUsernameLength))
	}
	if !usernamePattern.MatchString(in.Username) {
		return apperrors.ValidationField("username", "username may contain only letters, digits and underscores")
	}
	return nil
}

// Register creates a new account: a provider user first, then the local
// member row. If the member insert fails the provider user is deleted again
// so the two systems do not drift apart.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domainauth.Member, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		s.countRegistration("validation_error")
		return nil, err
	}

	// Fast-path conflict checks; the unique indexes stay authoritative.
	taken, err := s.members.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		s.countRegistration("username_in_use")
		return nil, apperrors.ConflictField("username", "username already in use")
	}
	taken, err = s.members.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		s.countRegistration("email_in_use")
		return nil, apperrors.ConflictField("email", "email already in use")
	}

	ident, err := s.provider.Register(ctx, ports.RegisterInput{
		Email:       in.Email,
		Password:    in.Password,
		Username:    in.Username,
		DisplayName: in.DisplayName,
	})
	if err != nil {
		s.countRegistration("provider_error")
		return nil, fmt.Errorf("provider register: %w", err)
	}

	member, err := s.upsertIdentity(ctx, ident)
	if err != nil {
		// Compensating delete keeps the provider consistent with the
		// members table. Best effort; failures are logged, not returned.
		if delErr := s.provider.DeleteUser(ctx, ident.Subject); delErr != nil {
			s.logger.ErrorContext(ctx, "compensating provider delete failed",
				"subject", ident.Subject, "err", delErr)
		}
		s.countRegistration("upsert_error")
		return nil, err
	}

	s.countRegistration("success")
	return member, nil
}

// Login authenticates email/password credentials and returns the member.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domainauth.Member, error) {
	ident, err := s.provider.SignIn(ctx, strings.TrimSpace(strings.ToLower(email)), password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			s.countLogin("invalid_credentials")
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		s.countLogin("provider_error")
		return nil, fmt.Errorf("provider sign-in: %w", err)
	}

	member, err := s.upsertIdentity(ctx, ident)
	if err != nil {
		s.countLogin("upsert_error")
		return nil, err
	}
	s.countLogin("success")
	return member, nil
}

// Exchange verifies a provider-issued access token and returns the member it
// names, creating or refreshing the member row on the way.
func (s *AuthService) Exchange(ctx context.Context, accessToken string) (*domainauth.Member, error) {
	ident, err := s.provider.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidToken) {
			s.countLogin("invalid_token")
			return nil, apperrors.Unauthorized("invalid access token")
		}
		s.countLogin("provider_error")
		return nil, fmt.Errorf("verify access token: %w", err)
	}

	member, err := s.upsertIdentity(ctx, ident)
	if err != nil {
		s.countLogin("upsert_error")
		return nil, err
	}
	s.countLogin("success")
	return member, nil
}

func (s *AuthService) upsertIdentity(ctx context.Context, ident ports.ProviderIdentity) (*domainauth.Member, error) {
	member, err := s.members.Upsert(ctx, ports.UpsertMemberInput{
		Provider:    ProviderName,
		Subject:     ident.Subject,
		Email:       ident.Email,
		Username:    ident.Username,
		DisplayName: ident.DisplayName,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("upsert member: %w", err)
	}
	return member, nil
}

func (s *AuthService) countLogin(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Logins.WithLabelValues(result).Inc()
}

func (s *AuthService) countRegistration(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Registrations.WithLabelValues(result).Inc()
}
