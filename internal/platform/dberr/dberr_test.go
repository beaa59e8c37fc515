// Copyright (c) 2026 Bazario. All rights reserved.

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqhuan/bazario/internal/platform/apperr"
	"github.com/nqhuan/bazario/internal/platform/dberr"
)

/*
TestWrap_NoRows verifies that missing rows map to a 404 for the named resource.
*/
func TestWrap_NoRows(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "User")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	assert.Equal(t, "User not found", ae.Message)
}

/*
TestWrap_UniqueViolation verifies that SQLSTATE 23505 maps to a 400 DUPLICATE
with a field-specific message derived from the constraint name.
*/
func TestWrap_UniqueViolation(t *testing.T) {
	pgError := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "account_email_key",
	}

	err := dberr.Wrap(pgError, "User")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "DUPLICATE", ae.Code)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	assert.Equal(t, "Email already exists.", ae.Message)
}

/*
TestWrap_Unknown verifies that unexpected errors become opaque 500s while the
cause remains available for server-side logging.
*/
func TestWrap_Unknown(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := dberr.Wrap(cause, "User")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
	assert.True(t, errors.Is(err, cause))
}

func TestFieldFromConstraint(t *testing.T) {
	tests := []struct {
		constraint string
		field      string
	}{
		{"account_email_key", "email"},
		{"category_slug_key", "slug"},
		{"category_slug_idx", "slug"},
		{"", "value"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			assert.Equal(t, tt.field, dberr.FieldFromConstraint(tt.constraint))
		})
	}
}
