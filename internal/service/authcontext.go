package service

import (
	"context"
	"fmt"
	"time"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	"github.com/rankedhq/ranked-api/internal/observability/metrics"
	"github.com/rankedhq/ranked-api/internal/ports"
	"github.com/rankedhq/ranked-api/internal/session"
)

// AuthContextConfig holds the session-lifetime knobs for resolution.
type AuthContextConfig struct {
	// TTL is the rolling window applied on each authenticated request.
	TTL time.Duration
	// AbsoluteTTL caps the total session lifetime measured from issue time.
	AbsoluteTTL time.Duration
	// Rolling controls whether authenticated requests extend the session.
	Rolling bool
}

// AuthContextServiceOptions groups dependencies for AuthContextService.
type AuthContextServiceOptions struct {
	Members ports.MemberStore
	Config  AuthContextConfig
	Metrics *metrics.Metrics
}

// AuthContextService turns a decoded session into an auth context. Every
// request goes through Resolve exactly once, before any handler runs.
type AuthContextService struct {
	members ports.MemberStore
	cfg     AuthContextConfig
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewAuthContextService constructs a new AuthContextService.
func NewAuthContextService(opts AuthContextServiceOptions) *AuthContextService {
	if opts.Members == nil {
		panic("authcontext: Members is required")
	}
	return &AuthContextService{
		members: opts.Members,
		cfg:     opts.Config,
		metrics: opts.Metrics,
		now:     time.Now,
	}
}

// WithNow overrides the clock. Test hook.
func (s *AuthContextService) WithNow(now func() time.Time) *AuthContextService {
	s.now = now
	return s
}

// Resolve classifies the session as anonymous, expired, or authenticated.
//
// Expiry is terminal for the session: any expired outcome deletes the session
// so the cookie is cleared on the way out. A store failure is the one case
// that returns an error; the caller must fail the request rather than treat
// the member as logged out.
func (s *AuthContextService) Resolve(ctx context.Context, sess *session.Session) (domainauth.Context, error) {
	memberID := sess.MemberID()
	if memberID == "" {
		s.count(metrics.OutcomeAnonymous, "")
		return domainauth.Unauthenticated(), nil
	}

	issuedAtMillis, ok := sess.IssuedAt()
	if !ok {
		sess.Delete()
		s.count(metrics.OutcomeExpired, string(domainauth.ExpiredMissingIssuedAt))
		return domainauth.Expired(domainauth.ExpiredMissingIssuedAt), nil
	}

	if s.cfg.AbsoluteTTL > 0 {
		issuedAt := time.UnixMilli(issuedAtMillis)
		if s.now().Sub(issuedAt) > s.cfg.AbsoluteTTL {
			sess.Delete()
			s.count(metrics.OutcomeExpired, string(domainauth.ExpiredAbsoluteTTL))
			return domainauth.Expired(domainauth.ExpiredAbsoluteTTL), nil
		}
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		s.count(metrics.OutcomeError, "")
		return domainauth.Context{}, fmt.Errorf("load member %s: %w", memberID, err)
	}
	if member == nil {
		sess.Delete()
		s.count(metrics.OutcomeExpired, string(domainauth.ExpiredMissingMember))
		return domainauth.Expired(domainauth.ExpiredMissingMember), nil
	}

	if s.cfg.Rolling {
		sess.Touch(s.now(), s.cfg.TTL)
	}

	s.count(metrics.OutcomeAuthenticated, "")
	return domainauth.Authenticated(member), nil
}

func (s *AuthContextService) count(outcome, reason string) {
	if s.metrics == nil {
		return
	}
	s.metrics.AuthResolutions.WithLabelValues(outcome, reason).Inc()
}
