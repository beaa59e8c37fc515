// Copyright (c) 2026 Bazario. All rights reserved.

/*
Package category implements the hierarchical product category catalogue.

Categories form a single-parent tree: each category optionally points to a
parent, and deleting a parent detaches its children back to the top level.
Every category carries an image stored in the object store and a reference
to the admin account that created it.
*/
package category

import (
	"time"

	"github.com/nqhuan/bazario/internal/platform/sec"
)

// # Domain Entities

// Creator is the embedded summary of the admin account that created a category.
//
// Only the public identity subset is exposed; the password hash never enters
// this type.
type Creator struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  sec.UserRole `json:"role"`
}

// Category represents a node of the product category tree.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	CreatedBy   *Creator `json:"createdBy,omitempty"`
	// ParentID is nil for top-level categories.
	ParentID  *string   `json:"parentCategory"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// # Field Identifiers

// Global field names for validation in the category domain.
const (
	FieldName           = "name"
	FieldSlug           = "slug"
	FieldDescription    = "description"
	FieldImage          = "image"
	FieldParentCategory = "parent_category"
)
