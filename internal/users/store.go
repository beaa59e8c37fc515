// Copyright (c) 2026 Bazario. All rights reserved.

/*
Package users implements the user directory and profile surface.

It exposes read-side operations over the accounts created by the auth
package: the ADMIN-only directory listing, the authenticated self profile,
and public profile lookup.

# Architecture

The package reuses the [auth.User] entity as its read model. Writes stay in
the auth package; this package never touches password hashes beyond relying
on the entity's JSON omission.
*/
package users

import (
	"context"

	"github.com/nqhuan/bazario/internal/auth"
)

// # Sort Orders

// SortOrder controls the alphabetical ordering of the user directory.
type SortOrder string

const (
	// SortAtoZ orders users by name ascending.
	SortAtoZ SortOrder = "atoz"
	// SortZtoA orders users by name descending.
	SortZtoA SortOrder = "ztoa"
)

// IsValid reports whether the sort order is a known value.
func (s SortOrder) IsValid() bool {
	return s == SortAtoZ || s == SortZtoA
}

// # Data Access

// ListFilter narrows and orders a user directory query.
type ListFilter struct {
	// Search is a case-insensitive name prefix. Empty means no filtering.
	Search string
	// Sort is the alphabetical ordering; defaults to newest-first when empty.
	Sort SortOrder
	// Limit and Offset implement page-based navigation.
	Limit  int
	Offset int
}

// DirectoryRepository defines the read-side data access contract for accounts.
type DirectoryRepository interface {

	/*
		List returns a page of accounts matching the filter plus the total count.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []*auth.User: Page of hydrated accounts
		  - int: Total number of accounts matching the filter (ignoring the page)
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter ListFilter) ([]*auth.User, int, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)
}
