package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rankedhq/ranked-api/internal/data/pgxutil"
	"github.com/rankedhq/ranked-api/internal/ports"
)

// AddressRepo reads member address rows.
type AddressRepo struct {
	DB *sql.DB
}

// NewAddressRepo creates a new AddressRepo.
func NewAddressRepo(db *sql.DB) *AddressRepo {
	return &AddressRepo{DB: db}
}

var _ ports.AddressStore = (*AddressRepo)(nil)

// ListByMember returns the member's addresses, default first, newest next.
func (r *AddressRepo) ListByMember(ctx context.Context, memberID string) ([]ports.MemberAddress, error) {
	var out []ports.MemberAddress
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, member_id,
			       NULLIF(label, '') AS label,
			       NULLIF(full_name, '') AS full_name,
			       line1,
			       NULLIF(line2, '') AS line2,
			       city,
			       NULLIF(region, '') AS region,
			       NULLIF(postal_code, '') AS postal_code,
			       country,
			       NULLIF(phone, '') AS phone,
			       is_default, created_at, updated_at
			FROM member_addresses
			WHERE member_id = $1
			ORDER BY is_default DESC, created_at DESC`,
			memberID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[ports.MemberAddress])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list member addresses: %w", err)
	}
	return out, nil
}

// HasAny reports whether the member has at least one saved address.
func (r *AddressRepo) HasAny(ctx context.Context, memberID string) (bool, error) {
	var has bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM member_addresses WHERE member_id = $1)`,
			memberID).Scan(&has)
	}); err != nil {
		return false, fmt.Errorf("failed to check member addresses: %w", err)
	}
	return has, nil
}
