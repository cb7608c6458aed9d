package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rankedhq/ranked-api/internal/data/pgxutil"
	"github.com/rankedhq/ranked-api/internal/ports"
)

// PreferenceRepo stores per-member preferences.
type PreferenceRepo struct {
	DB *sql.DB
}

// NewPreferenceRepo creates a new PreferenceRepo.
func NewPreferenceRepo(db *sql.DB) *PreferenceRepo {
	return &PreferenceRepo{DB: db}
}

var _ ports.PreferenceStore = (*PreferenceRepo)(nil)

// SetActiveOrganisation persists the member's active organisation selection.
// Passing nil clears the selection.
func (r *PreferenceRepo) SetActiveOrganisation(ctx context.Context, memberID string, organisationID *string) error {
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO member_preferences (member_id, active_organisation_id, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (member_id) DO UPDATE
			SET active_organisation_id = EXCLUDED.active_organisation_id,
			    updated_at = now()`,
			memberID, organisationID)
		return err
	}); err != nil {
		return fmt.Errorf("failed to set active organisation: %w", err)
	}
	return nil
}

// GetActiveOrganisation returns the member's stored active organisation id,
// or nil when none is set.
func (r *PreferenceRepo) GetActiveOrganisation(ctx context.Context, memberID string) (*string, error) {
	var out *string
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT active_organisation_id
			FROM member_preferences
			WHERE member_id = $1`,
			memberID).Scan(&out)
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active organisation: %w", err)
	}
	return out, nil
}
