// Copyright (c) 2026 Bazario. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Why a bridge?
//
// Repositories must never leak pgx errors to handlers. This package
// classifies the two storage failures that carry API meaning — missing rows
// and unique-constraint violations — and wraps everything else as internal.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nqhuan/bazario/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows            → NOT_FOUND for the named resource.
//   - SQLSTATE 23505           → DUPLICATE on the violated field. The unique
//     index is the authoritative arbiter for concurrent writes; application
//     pre-checks are an optimization only, so this path must produce the
//     same client-facing error as the pre-check.
//   - anything else            → INTERNAL (cause retained for logging).
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
		return apperr.Duplicate(FieldFromConstraint(pgError.ConstraintName))
	}

	return apperr.Internal(err)
}

// FieldFromConstraint derives the JSON field name from a PostgreSQL
// unique-constraint name.
//
// Constraints follow the default "<table>_<column>_key" naming, so
// "account_email_key" yields "email".
func FieldFromConstraint(constraint string) string {
	name := strings.TrimSuffix(constraint, "_key")
	name = strings.TrimSuffix(name, "_idx")

	if idx := strings.Index(name, "_"); idx >= 0 {
		name = name[idx+1:]
	}

	if name == "" {
		return "value"
	}
	return name
}
