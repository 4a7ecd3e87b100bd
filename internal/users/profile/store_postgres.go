// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/dberr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID retrieves a profile by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7, shared with the paired account row)

Returns:
  - *Profile: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Profile, error) {
	const query = `
		SELECT id, name, email, role, isactive, createdat, updatedat
		FROM users.profile
		WHERE id = $1`

	found := &Profile{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.Email,
		&found.Role,
		&found.IsActive,
		&found.CreatedAt,
		&found.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Profile")
		}
		return nil, dberr.Wrap(err, "postgres_profile_repo_find_by_id_failed")
	}

	return found, nil
}

/*
List retrieves every profile, optionally restricted to a single role.

Parameters:
  - context: context.Context
  - role: sec.Role (zero value = no filter)

Returns:
  - []*Profile: Profiles ordered by display name
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, role sec.Role) ([]*Profile, error) {
	query := `
		SELECT id, name, email, role, isactive, createdat, updatedat
		FROM users.profile`
	args := []any{}

	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY name ASC`

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_profile_repo_list_failed")
	}
	defer rows.Close()

	profiles := make([]*Profile, 0)
	for rows.Next() {
		found := &Profile{}
		if err := rows.Scan(
			&found.ID,
			&found.Name,
			&found.Email,
			&found.Role,
			&found.IsActive,
			&found.CreatedAt,
			&found.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_profile_repo_scan_failed")
		}
		profiles = append(profiles, found)
	}

	return profiles, rows.Err()
}

/*
Create persists a new profile and its credential account atomically.

Description: Both rows share the same UUID primary key, which is how the
profile resolver later joins an Identity back to its Profile. A transaction
guarantees no half-created user can exist.

Parameters:
  - context: context.Context
  - profile: *Profile
  - passwordHash: string

Returns:
  - error: apperr.Conflict on duplicate email, or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, profile *Profile, passwordHash string) error {
	const accountQuery = `
		INSERT INTO users.account (id, email, passwordhash, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`
	const profileQuery = `
		INSERT INTO users.profile (id, name, email, role, isactive, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "postgres_profile_repo_begin_failed")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if _, err := transaction.Exec(context, accountQuery,
		profile.ID, profile.Email, passwordHash, profile.CreatedAt, profile.UpdatedAt,
	); err != nil {
		return dberr.Wrap(err, "postgres_profile_repo_create_account_failed")
	}

	if _, err := transaction.Exec(context, profileQuery,
		profile.ID, profile.Name, profile.Email, profile.Role, profile.IsActive,
		profile.CreatedAt, profile.UpdatedAt,
	); err != nil {
		return dberr.Wrap(err, "postgres_profile_repo_create_profile_failed")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "postgres_profile_repo_commit_failed")
	}

	return nil
}

/*
Update persists changes to a profile's mutable fields (name, role).

Parameters:
  - context: context.Context
  - profile: *Profile

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, profile *Profile) error {
	const query = `
		UPDATE users.profile
		SET name = $2, role = $3, updatedat = $4
		WHERE id = $1`

	profile.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		profile.ID,
		profile.Name,
		profile.Role,
		profile.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_profile_repo_update_failed")
	}

	return nil
}

/*
SetActive flips a profile's active flag.

Description: Deactivation is the soft-delete of this domain. A deactivated
profile fails the login active-flag check on its next explicit login.

Parameters:
  - context: context.Context
  - id: string
  - isActive: bool

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) SetActive(context context.Context, id string, isActive bool) error {
	const query = "UPDATE users.profile SET isactive = $2, updatedat = $3 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id, isActive, time.Now())
	if err != nil {
		return dberr.Wrap(err, "postgres_profile_repo_set_active_failed")
	}
	return nil
}
