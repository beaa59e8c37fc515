// Copyright (c) 2026 Bazario. All rights reserved.

// PostgreSQL implementation of the category tree storage.
//
// # Error Mapping
//
// The unique index on slug surfaces as a Duplicate error through the dberr
// bridge ("Slug already exists."), and missing rows surface as NotFound.
package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nqhuan/bazario/internal/platform/apperr"
	"github.com/nqhuan/bazario/internal/platform/dberr"
	"github.com/nqhuan/bazario/internal/platform/sec"
)

// # Category Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// categoryColumns is the canonical scan list, creator columns included.
// The LEFT JOIN keeps categories readable even if the creating account
// was removed.
const categoryColumns = `
	c.id, c.name, c.slug, c.description, c.image, c.parent_id, c.created_at, c.updated_at,
	a.id, a.name, a.email, a.role`

const categoryFrom = `
	FROM category c
	LEFT JOIN account a ON a.id = c.created_by`

/*
Create persists a new category node.

Parameters:
  - context: context.Context
  - category: *Category (CreatedBy.ID must reference an existing account)

Returns:
  - error: Duplicate on slug collision, or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO category (
			id, name, slug, description, image, created_by, parent_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var createdBy *string
	if category.CreatedBy != nil {
		createdBy = &category.CreatedBy.ID
	}

	_, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.Image,
		createdBy,
		category.ParentID,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	return nil
}

/*
List returns a page of categories matching the filter plus the total count.

Description: The search term matches as a case-insensitive name prefix.
A nil ParentID restricts results to top-level categories; a set ParentID
restricts to direct children of that node.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []*Category: Page of hydrated categories, newest first
  - int: Total matching count
  - error: Execution failures
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]*Category, int, error) {

	// ── 1. Build the shared WHERE clause ──────────────────────────────────
	where := "WHERE c.parent_id IS NULL"
	args := []any{}
	if filter.ParentID != nil {
		where = "WHERE c.parent_id = $1"
		args = append(args, *filter.ParentID)
	}

	if filter.Search != "" {
		where += fmt.Sprintf(" AND c.name ILIKE $%d || '%%'", len(args)+1)
		args = append(args, filter.Search)
	}

	// ── 2. Count the full result set for pagination metadata ─────────────
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM category c %s", where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Category")
	}

	// ── 3. Fetch the requested page ───────────────────────────────────────
	pageQuery := fmt.Sprintf(
		"SELECT %s %s %s ORDER BY c.id DESC LIMIT $%d OFFSET $%d",
		categoryColumns, categoryFrom, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := repository.pool.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	var results []*Category
	for rows.Next() {
		category, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Category")
		}
		results = append(results, category)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Category")
	}

	return results, total, nil
}

/*
FindByID returns the category with the given ID, creator included.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Category: Hydrated entity
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Category, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE c.id = $1", categoryColumns, categoryFrom)

	row := repository.pool.QueryRow(context, query, id)
	category, err := scanCategory(row.Scan)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	return category, nil
}

/*
Update persists changes to a category's mutable fields.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: apperr.NotFound, Duplicate on slug collision, or execution failures
*/
func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE category
		SET name = $2, slug = $3, description = $4, image = $5, parent_id = $6, updated_at = $7
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.Image,
		category.ParentID,
		category.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

/*
Delete removes a category node.

Description: The parent_id FK declares ON DELETE SET NULL, so children are
detached to the top level atomically with the parent's removal.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM category WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

// scanCategory hydrates a Category (creator included) from a row scan.
func scanCategory(scan func(dest ...any) error) (*Category, error) {
	category := &Category{}

	var creatorID, creatorName, creatorEmail, creatorRole *string
	err := scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.Image,
		&category.ParentID,
		&category.CreatedAt,
		&category.UpdatedAt,
		&creatorID,
		&creatorName,
		&creatorEmail,
		&creatorRole,
	)
	if err != nil {
		return nil, err
	}

	if creatorID != nil {
		category.CreatedBy = &Creator{
			ID:    *creatorID,
			Name:  derefOrEmpty(creatorName),
			Email: derefOrEmpty(creatorEmail),
		}
		if creatorRole != nil {
			category.CreatedBy.Role = sec.UserRole(*creatorRole)
		}
	}

	return category, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
