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

// OrganisationRepo provides database operations for organisations.
type OrganisationRepo struct {
	DB *sql.DB
}

// NewOrganisationRepo creates a new OrganisationRepo.
func NewOrganisationRepo(db *sql.DB) *OrganisationRepo {
	return &OrganisationRepo{DB: db}
}

var _ ports.OrganisationStore = (*OrganisationRepo)(nil)

// GetByID fetches an organisation by id. Returns (nil, nil) when it does not exist.
func (r *OrganisationRepo) GetByID(ctx context.Context, id string) (*domainauth.Organisation, error) {
	var (
		out   domainauth.Organisation
		found bool
	)
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, slug, name
			FROM organisations
			WHERE id = $1`,
			id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, found, err = pgxutil.CollectOneOrNil[domainauth.Organisation](rows)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}
