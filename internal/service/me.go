package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	apperrors "github.com/rankedhq/ranked-api/internal/errors"
	"github.com/rankedhq/ranked-api/internal/ports"
)

// MeServiceOptions groups dependencies for MeService.
type MeServiceOptions struct {
	Members     ports.MemberStore
	Memberships ports.MembershipStore
	Extras      MeServiceExtras
}

// MeServiceExtras holds the secondary stores consulted for the me payload.
type MeServiceExtras struct {
	Addresses   ports.AddressStore
	Preferences ports.PreferenceStore
}

// MeService assembles the session-holder profile payload.
type MeService struct {
	members     ports.MemberStore
	memberships ports.MembershipStore
	addresses   ports.AddressStore
	preferences ports.PreferenceStore
}

// NewMeService constructs a new MeService.
func NewMeService(opts MeServiceOptions) *MeService {
	if opts.Members == nil {
		panic("me: Members is required")
	}
	if opts.Memberships == nil {
		panic("me: Memberships is required")
	}
	if opts.Extras.Addresses == nil {
		panic("me: Extras.Addresses is required")
	}
	if opts.Extras.Preferences == nil {
		panic("me: Extras.Preferences is required")
	}
	return &MeService{
		members:     opts.Members,
		memberships: opts.Memberships,
		addresses:   opts.Extras.Addresses,
		preferences: opts.Extras.Preferences,
	}
}

// UserView is the member as exposed to the client.
type UserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// OrganisationView is the organisation summary inside a membership entry.
type OrganisationView struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// MembershipView pairs an organisation with the member's effective role.
type MembershipView struct {
	Organisation OrganisationView `json:"organisation"`
	Role         string           `json:"role"`
}

// MePayload is the response body shared by /me and the auth endpoints.
type MePayload struct {
	User                 UserView         `json:"user"`
	IsSuperAdmin         bool             `json:"isSuperAdmin"`
	Memberships          []MembershipView `json:"memberships"`
	HasAddresses         bool             `json:"hasAddresses"`
	ActiveOrganisationID *string          `json:"activeOrganisationId"`
}

// BuildPayload gathers the profile payload for an authenticated member. The
// four point queries are independent, so they run concurrently.
func (s *MeService) BuildPayload(ctx context.Context, member *domainauth.Member) (*MePayload, error) {
	payload := &MePayload{
		User: UserView{
			ID:          member.InternalID,
			Email:       member.Email,
			Username:    member.Username,
			DisplayName: member.DisplayName,
		},
		Memberships: []MembershipView{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		isAdmin, err := s.members.IsSuperAdmin(gctx, member.InternalID)
		if err != nil {
			return fmt.Errorf("super admin check: %w", err)
		}
		payload.IsSuperAdmin = isAdmin
		return nil
	})

	g.Go(func() error {
		list, err := s.memberships.ListActive(gctx, member.InternalID)
		if err != nil {
			return fmt.Errorf("list memberships: %w", err)
		}
		views := make([]MembershipView, len(list))
		for i, m := range list {
			views[i] = MembershipView{
				Organisation: OrganisationView{ID: m.Org.ID, Slug: m.Org.Slug, Name: m.Org.Name},
				Role:         string(domainauth.PickRole(m.Roles)),
			}
		}
		payload.Memberships = views
		return nil
	})

	g.Go(func() error {
		has, err := s.addresses.HasAny(gctx, member.InternalID)
		if err != nil {
			return fmt.Errorf("address check: %w", err)
		}
		payload.HasAddresses = has
		return nil
	})

	g.Go(func() error {
		active, err := s.preferences.GetActiveOrganisation(gctx, member.InternalID)
		if err != nil {
			return fmt.Errorf("active organisation lookup: %w", err)
		}
		payload.ActiveOrganisationID = active
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return payload, nil
}

// SetActiveOrganisation records the member's organisation selection after
// verifying an ACTIVE membership. A nil id clears the selection.
func (s *MeService) SetActiveOrganisation(ctx context.Context, memberID string, organisationID *string) error {
	if organisationID != nil {
		if uuid.Validate(*organisationID) != nil {
			return apperrors.Validation("invalid organisation id")
		}
		membership, err := s.memberships.GetActive(ctx, memberID, *organisationID)
		if err != nil {
			return fmt.Errorf("load membership: %w", err)
		}
		if membership == nil {
			return apperrors.Forbidden("no active membership in organisation")
		}
	}
	if err := s.preferences.SetActiveOrganisation(ctx, memberID, organisationID); err != nil {
		return fmt.Errorf("store active organisation: %w", err)
	}
	return nil
}

// ListAddresses returns the member's saved addresses.
func (s *MeService) ListAddresses(ctx context.Context, memberID string) ([]ports.MemberAddress, error) {
	list, err := s.addresses.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	if list == nil {
		list = []ports.MemberAddress{}
	}
	return list, nil
}
