// Package devseed populates a development database with a known member,
// organisations, and memberships so a fresh environment is immediately
// usable. Never run against production data.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Fixed ids keep seeding idempotent: re-running updates rather than
// duplicates.
const (
	seedMemberID   = "11111111-1111-4111-8111-111111111111"
	seedOrgAcmeID  = "22222222-2222-4222-8222-222222222222"
	seedOrgOtherID = "33333333-3333-4333-8333-333333333333"
)

// Run inserts the development fixtures. The seeded member signs in through
// the identity provider as usual; only the local rows are provisioned here.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	steps := []struct {
		name string
		fn   func(context.Context, *sql.DB) error
	}{
		{"member", seedMember},
		{"organisations", seedOrganisations},
		{"memberships", seedMemberships},
		{"preferences", seedPreferences},
		{"addresses", seedAddresses},
	}

	for _, step := range steps {
		if err := step.fn(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}

	logger.InfoContext(ctx, "development data seeded",
		"member_id", seedMemberID,
		"organisations", 2)
	return nil
}

func seedMember(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO members (internal_id, auth_provider, auth_subject, email, username, display_name)
		VALUES ($1, 'gotrue', 'dev-subject-1', 'dev@example.com', 'dev_user', 'Dev User')
		ON CONFLICT (internal_id) DO UPDATE SET
			email = EXCLUDED.email,
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			updated_at = now()`,
		seedMemberID)
	return err
}

func seedOrganisations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO organisations (id, slug, name)
		VALUES
			($1, 'acme-running', 'Acme Running Club'),
			($2, 'city-tri', 'City Triathlon')
		ON CONFLICT (id) DO UPDATE SET
			slug = EXCLUDED.slug,
			name = EXCLUDED.name,
			updated_at = now()`,
		seedOrgAcmeID, seedOrgOtherID)
	return err
}

func seedMemberships(ctx context.Context, db *sql.DB) error {
	// Owner of one org, plain member of the other; both ACTIVE.
	_, err := db.ExecContext(ctx, `
		INSERT INTO org_memberships (member_id, organisation_id, status, roles)
		VALUES
			($1, $2, 'ACTIVE', '{OWNER}'),
			($1, $3, 'ACTIVE', '{MEMBER}')
		ON CONFLICT (member_id, organisation_id) DO UPDATE SET
			status = EXCLUDED.status,
			roles = EXCLUDED.roles,
			updated_at = now()`,
		seedMemberID, seedOrgAcmeID, seedOrgOtherID)
	return err
}

func seedPreferences(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO member_preferences (member_id, active_organisation_id)
		VALUES ($1, $2)
		ON CONFLICT (member_id) DO UPDATE SET
			active_organisation_id = EXCLUDED.active_organisation_id,
			updated_at = now()`,
		seedMemberID, seedOrgAcmeID)
	return err
}

func seedAddresses(ctx context.Context, db *sql.DB) error {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM member_addresses WHERE member_id = $1)`,
		seedMemberID).Scan(&exists)
	if err != nil || exists {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO member_addresses (member_id, label, line1, city, country, is_default)
		VALUES ($1, 'Home', '1 Example Way', 'London', 'GB', true)`,
		seedMemberID)
	return err
}
