package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rankedhq/ranked-api/internal/data/pgxutil"
	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	"github.com/rankedhq/ranked-api/internal/ports"
)

// MembershipRepo provides database operations for the member ↔ organisation relation.
type MembershipRepo struct {
	DB *sql.DB
}

// NewMembershipRepo creates a new MembershipRepo.
func NewMembershipRepo(db *sql.DB) *MembershipRepo {
	return &MembershipRepo{DB: db}
}

var _ ports.MembershipStore = (*MembershipRepo)(nil)

// GetActive fetches the ACTIVE membership of (member, organisation).
// Returns (nil, nil) when no active membership exists.
func (r *MembershipRepo) GetActive(ctx context.Context, memberID, organisationID string) (*domainauth.Membership, error) {
	var (
		out   domainauth.Membership
		found bool
	)
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT organisation_id, COALESCE(roles, '{}') AS roles
			FROM org_memberships
			WHERE member_id = $1
			  AND organisation_id = $2
			  AND status = 'ACTIVE'
			LIMIT 1`,
			memberID, organisationID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, found, err = pgxutil.CollectOneOrNil[domainauth.Membership](rows)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to get active membership: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}

// membershipWithOrgRow is the scan shape for ListActive.
type membershipWithOrgRow struct {
	OrganisationID string   `db:"organisation_id"`
	Roles          []string `db:"roles"`
	Slug           string   `db:"slug"`
	Name           string   `db:"name"`
}

// ListActive returns all active memberships of a member joined with their
// organisations, ordered by organisation name.
func (r *MembershipRepo) ListActive(ctx context.Context, memberID string) ([]ports.MembershipWithOrg, error) {
	var rowsOut []membershipWithOrgRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT m.organisation_id, COALESCE(m.roles, '{}') AS roles, o.slug, o.name
			FROM org_memberships m
			JOIN organisations o ON o.id = m.organisation_id
			WHERE m.member_id = $1
			  AND m.status = 'ACTIVE'
			ORDER BY o.name ASC`,
			memberID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[membershipWithOrgRow])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list active memberships: %w", err)
	}

	res := make([]ports.MembershipWithOrg, len(rowsOut))
	for i, row := range rowsOut {
		res[i] = ports.MembershipWithOrg{
			Org: domainauth.Organisation{
				ID:   row.OrganisationID,
				Slug: row.Slug,
				Name: row.Name,
			},
			Roles: row.Roles,
		}
	}
	return res, nil
}
