// Copyright (c) 2026 Bazario. All rights reserved.

package category

import "context"

// # Data Access

// ListFilter narrows a category listing query.
type ListFilter struct {
	// Search is a case-insensitive name prefix. Empty means no filtering.
	Search string
	// ParentID scopes the listing to children of one category.
	// Nil means top-level categories only.
	ParentID *string
	// Limit and Offset implement page-based navigation.
	Limit  int
	Offset int
}

// Repository defines the data access contract for the category tree.
type Repository interface {

	/*
		Create persists a new category node.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: Duplicate on slug collision, or persistence failures
	*/
	Create(context context.Context, category *Category) error

	/*
		List returns a page of categories matching the filter plus the total count.
		Each result carries its hydrated creator summary.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []*Category: Page of hydrated categories
		  - int: Total matching count (ignoring the page)
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter) ([]*Category, int, error)

	/*
		FindByID returns the category with the given ID, creator included.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Category: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Category, error)

	/*
		Update persists changes to a category's mutable fields.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: Duplicate on slug collision, or persistence failures
	*/
	Update(context context.Context, category *Category) error

	/*
		Delete removes a category node. Children are detached to the top
		level by the FK's ON DELETE SET NULL.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error
}
