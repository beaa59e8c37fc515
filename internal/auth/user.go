// Copyright (c) 2026 Bazario. All rights reserved.

/*
Package auth implements the user identity layer.

It defines the core domain entity (User) and the logic for registration,
authentication, and account verification.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/nqhuan/bazario/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Bazario platform.
type User struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	PasswordHash     string       `json:"-"` // Explicitly omitted from JSON for security.
	Phone            string       `json:"phone,omitempty"`
	Role             sec.UserRole `json:"role"`
	Avatar           string       `json:"avatar,omitempty"`
	IsEmailVerified  bool         `json:"isEmailVerified"`
	HasNotifications bool         `json:"hasNotifications"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Identity converts the full account record into the hash-free identity shape
// attached to authenticated request contexts.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Phone:            user.Phone,
		Role:             user.Role,
		Avatar:           user.Avatar,
		IsEmailVerified:  user.IsEmailVerified,
		HasNotifications: user.HasNotifications,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPhone       = "phone"
	FieldRole        = "role"
	FieldToken       = "token"
	FieldUser        = "user"
	FieldAccessToken = "accessToken"
)
