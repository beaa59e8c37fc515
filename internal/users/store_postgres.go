// Copyright (c) 2026 Bazario. All rights reserved.

package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nqhuan/bazario/internal/auth"
	"github.com/nqhuan/bazario/internal/platform/dberr"
)

// # Directory Repository

// PostgresDirectoryRepository implements DirectoryRepository using pgx.
type PostgresDirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new PostgreSQL implementation of the DirectoryRepository.
func NewDirectoryRepository(pool *pgxpool.Pool) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, phone, role, avatar, is_email_verified, has_notifications, created_at, updated_at`

/*
List returns a page of accounts matching the filter plus the total count.

Description: The search term matches as a case-insensitive name prefix.
Ordering follows the requested alphabetical sort, falling back to
newest-first (id DESC works because IDs are time-sortable UUIDv7).

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []*auth.User: Page of hydrated accounts
  - int: Total matching count
  - error: Execution failures
*/
func (repository *PostgresDirectoryRepository) List(context context.Context, filter ListFilter) ([]*auth.User, int, error) {

	// ── 1. Build the shared WHERE clause ──────────────────────────────────
	where := ""
	args := []any{}
	if filter.Search != "" {
		where = "WHERE name ILIKE $1 || '%'"
		args = append(args, filter.Search)
	}

	// ── 2. Count the full result set for pagination metadata ─────────────
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM account %s", where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	// ── 3. Fetch the requested page ───────────────────────────────────────
	orderBy := "id DESC"
	switch filter.Sort {
	case SortAtoZ:
		orderBy = "name ASC"
	case SortZtoA:
		orderBy = "name DESC"
	}

	pageQuery := fmt.Sprintf(
		"SELECT %s FROM account %s ORDER BY %s LIMIT $%d OFFSET $%d",
		userColumns, where, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := repository.pool.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	var results []*auth.User
	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Phone,
			&user.Role,
			&user.Avatar,
			&user.IsEmailVerified,
			&user.HasNotifications,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		results = append(results, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	return results, total, nil
}

/*
FindByID returns the account with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresDirectoryRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM account WHERE id = $1", userColumns)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.Avatar,
		&user.IsEmailVerified,
		&user.HasNotifications,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}
