// Copyright (c) 2026 Bazario. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization tier granted to an account.
type UserRole string

const (
	// Unrestricted system access: user directory, category management
	RoleAdmin UserRole = "ADMIN"

	// Default role for standard registered accounts
	RoleUser UserRole = "USER"
)

// AllRoles is the closed set of roles an account may carry.
var AllRoles = []UserRole{RoleUser, RoleAdmin}

// IsValid reports whether r is a member of the enumerated role set.
func (r UserRole) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// In reports whether r is a member of the given required-role set.
//
// # Authorization Model
//
// Bazario uses per-operation required-role sets rather than a numeric
// hierarchy: an operation declares exactly which roles may invoke it, and
// membership is the only check.
func (r UserRole) In(required ...UserRole) bool {
	for _, role := range required {
		if r == role {
			return true
		}
	}
	return false
}
