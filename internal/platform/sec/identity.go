// Copyright (c) 2026 Bazario. All rights reserved.

package sec

import "time"

// Identity is the resolved caller identity attached to the request context
// after the access guard has verified the token AND re-read the account from
// the credential store.
//
// # Why not reuse the token claims?
//
// Claims reflect the account state at issue time. The guard resolves the
// subject against live storage so that role changes and deleted accounts take
// effect immediately; Identity therefore carries the live role, not the
// claimed one. The password hash is deliberately absent from this type.
type Identity struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Role             UserRole  `json:"role"`
	Avatar           string    `json:"avatar,omitempty"`
	IsEmailVerified  bool      `json:"isEmailVerified"`
	HasNotifications bool      `json:"hasNotifications"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
