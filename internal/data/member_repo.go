package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rankedhq/ranked-api/internal/data/pgxutil"
	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	apperrors "github.com/rankedhq/ranked-api/internal/errors"
	"github.com/rankedhq/ranked-api/internal/ports"
)

// MemberRepo provides database operations for member identity records.
type MemberRepo struct {
	DB *sql.DB
}

// NewMemberRepo creates a new MemberRepo.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{DB: db}
}

var _ ports.MemberStore = (*MemberRepo)(nil)

const memberByIDQuery = `
	SELECT internal_id, email, COALESCE(username, '') AS username, display_name
	FROM members
	WHERE internal_id = $1
	LIMIT 1`

// GetByID fetches a member by internal id. Returns (nil, nil) when no row exists.
func (r *MemberRepo) GetByID(ctx context.Context, internalID string) (*domainauth.Member, error) {
	var (
		out   domainauth.Member
		found bool
	)
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, memberByIDQuery, internalID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, found, err = pgxutil.CollectOneOrNil[domainauth.Member](rows)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to get member by id: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}

// UsernameExists reports whether a member already holds the username.
func (r *MemberRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM members WHERE lower(username) = lower($1))`, strings.TrimSpace(username))
}

// EmailExists reports whether a member already holds the email.
func (r *MemberRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM members WHERE lower(email) = lower($1))`, strings.TrimSpace(email))
}

// IsSuperAdmin reports whether the member is a platform super admin.
func (r *MemberRepo) IsSuperAdmin(ctx context.Context, memberID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM ranked_admins WHERE member_id = $1)`, memberID)
}

// Upsert creates or refreshes the member row for an authenticated provider
// subject. Fields already set on the row win over empty inputs so an exchange
// sign-in without profile metadata does not wipe username/display name.
func (r *MemberRepo) Upsert(ctx context.Context, in ports.UpsertMemberInput) (*domainauth.Member, error) {
	var out domainauth.Member
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO members (auth_provider, auth_subject, email, username, display_name)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5)
			ON CONFLICT (auth_provider, auth_subject)
			DO UPDATE SET
				email = EXCLUDED.email,
				username = COALESCE(EXCLUDED.username, members.username),
				display_name = CASE WHEN EXCLUDED.display_name <> '' THEN EXCLUDED.display_name ELSE members.display_name END
			RETURNING internal_id, email, COALESCE(username, '') AS username, display_name`,
			in.Provider,
			in.Subject,
			strings.TrimSpace(in.Email),
			strings.TrimSpace(in.Username),
			strings.TrimSpace(in.DisplayName),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.Member])
		return err
	}); err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("failed to upsert member: %w", err)
	}
	return &out, nil
}

// uniqueViolation maps a Postgres unique violation on the member identity
// columns to a field-scoped conflict error, or returns nil for other errors.
func uniqueViolation(err error) *apperrors.AppError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return apperrors.ConflictField("username", "username already in use")
	case strings.Contains(pgErr.ConstraintName, "email"):
		return apperrors.ConflictField("email", "email already in use")
	default:
		return apperrors.Conflict("member already exists")
	}
}

// exists runs an EXISTS query with variadic args.
func (r *MemberRepo) exists(ctx context.Context, q string, args ...any) (bool, error) {
	var exists bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, q, args...).Scan(&exists)
	}); err != nil {
		return false, fmt.Errorf("failed to run exists query: %w", err)
	}
	return exists, nil
}
