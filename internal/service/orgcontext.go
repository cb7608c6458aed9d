package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	apperrors "github.com/rankedhq/ranked-api/internal/errors"
	"github.com/rankedhq/ranked-api/internal/observability/metrics"
	"github.com/rankedhq/ranked-api/internal/ports"
)

// OrgContextServiceOptions groups dependencies for OrgContextService.
type OrgContextServiceOptions struct {
	Memberships   ports.MembershipStore
	Organisations ports.OrganisationStore
	Metrics       *metrics.Metrics
}

// OrgContextService resolves the caller's organisation scope from a raw
// organisation id supplied on the request.
type OrgContextService struct {
	memberships   ports.MembershipStore
	organisations ports.OrganisationStore
	metrics       *metrics.Metrics
}

// NewOrgContextService constructs a new OrgContextService.
func NewOrgContextService(opts OrgContextServiceOptions) *OrgContextService {
	if opts.Memberships == nil {
		panic("orgcontext: Memberships is required")
	}
	if opts.Organisations == nil {
		panic("orgcontext: Organisations is required")
	}
	return &OrgContextService{
		memberships:   opts.Memberships,
		organisations: opts.Organisations,
		metrics:       opts.Metrics,
	}
}

// Resolve checks the member's active membership in the named organisation and
// returns the organisation together with the member's effective role.
//
// The membership check runs before the organisation lookup so a caller cannot
// use this endpoint to probe which organisation ids exist.
func (s *OrgContextService) Resolve(ctx context.Context, memberID, rawOrgID string) (*domainauth.OrgContext, error) {
	if uuid.Validate(rawOrgID) != nil {
		s.count("invalid_id")
		return nil, apperrors.Validation("invalid organisation id")
	}

	membership, err := s.memberships.GetActive(ctx, memberID, rawOrgID)
	if err != nil {
		s.count("error")
		return nil, fmt.Errorf("load membership: %w", err)
	}
	if membership == nil {
		s.count("forbidden")
		return nil, apperrors.Forbidden("no active membership in organisation")
	}

	org, err := s.organisations.GetByID(ctx, rawOrgID)
	if err != nil {
		s.count("error")
		return nil, fmt.Errorf("load organisation: %w", err)
	}
	if org == nil {
		s.count("not_found")
		return nil, apperrors.NotFound("organisation not found")
	}

	s.count("ok")
	return &domainauth.OrgContext{
		Org:  *org,
		Role: domainauth.PickRole(membership.Roles),
	}, nil
}

func (s *OrgContextService) count(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.OrgResolutions.WithLabelValues(outcome).Inc()
}
