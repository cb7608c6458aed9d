package ports

// Package ports defines interfaces (hexagonal ports) for the data-store and
// identity-provider boundaries. Implementations live in internal/data and
// internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
)

// MemberStore reads and writes the durable identity records.
type MemberStore interface {
	// GetByID fetches a member by internal id. Returns (nil, nil) when no row exists.
	GetByID(ctx context.Context, internalID string) (*domainauth.Member, error)

	// UsernameExists reports whether a member already holds the username.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether a member already holds the email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Upsert creates or refreshes the member row for an authenticated provider
	// subject and returns the resulting member.
	Upsert(ctx context.Context, in UpsertMemberInput) (*domainauth.Member, error)

	// IsSuperAdmin reports whether the member is a platform super admin.
	IsSuperAdmin(ctx context.Context, memberID string) (bool, error)
}

// UpsertMemberInput groups parameters for MemberStore.Upsert.
type UpsertMemberInput struct {
	Provider    string
	Subject     string
	Email       string
	Username    string
	DisplayName string
}

// MembershipStore reads the member ↔ organisation relation.
type MembershipStore interface {
	// GetActive fetches the ACTIVE membership of (member, organisation).
	// Returns (nil, nil) when the member holds no active membership — this
	// covers never-joined, pending, and removed/suspended uniformly.
	GetActive(ctx context.Context, memberID, organisationID string) (*domainauth.Membership, error)

	// ListActive returns all active memberships of a member joined with their
	// organisations, ordered by organisation name.
	ListActive(ctx context.Context, memberID string) ([]MembershipWithOrg, error)
}

// MembershipWithOrg pairs a membership with its organisation for listing.
type MembershipWithOrg struct {
	Org   domainauth.Organisation
	Roles []string
}

// OrganisationStore reads organisation records.
type OrganisationStore interface {
	// GetByID fetches an organisation by id. Returns (nil, nil) when no row exists.
	GetByID(ctx context.Context, id string) (*domainauth.Organisation, error)
}

// PreferenceStore persists per-member preferences.
type PreferenceStore interface {
	// SetActiveOrganisation records the member's active organisation; nil clears it.
	SetActiveOrganisation(ctx context.Context, memberID string, organisationID *string) error
	// GetActiveOrganisation returns the stored selection, or nil when unset.
	GetActiveOrganisation(ctx context.Context, memberID string) (*string, error)
}

// AddressStore reads member address rows.
type AddressStore interface {
	// ListByMember returns the member's addresses, default first, newest next.
	ListByMember(ctx context.Context, memberID string) ([]MemberAddress, error)

	// HasAny reports whether the member has at least one address.
	HasAny(ctx context.Context, memberID string) (bool, error)
}

// MemberAddress is a postal address attached to a member.
type MemberAddress struct {
	ID         string    `json:"id"         db:"id"`
	MemberID   string    `json:"memberId"   db:"member_id"`
	Label      *string   `json:"label"      db:"label"`
	FullName   *string   `json:"fullName"   db:"full_name"`
	Line1      string    `json:"line1"      db:"line1"`
	Line2      *string   `json:"line2"      db:"line2"`
	City       string    `json:"city"       db:"city"`
	Region     *string   `json:"region"     db:"region"`
	PostalCode *string   `json:"postalCode" db:"postal_code"`
	Country    string    `json:"country"    db:"country"`
	Phone      *string   `json:"phone"      db:"phone"`
	IsDefault  bool      `json:"isDefault"  db:"is_default"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt"  db:"updated_at"`
}
