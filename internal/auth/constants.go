// Copyright (c) 2026 Bazario. All rights reserved.

package auth

import "time"

// Token configuration for the email verification flow.
const (
	// VerificationTokenTTL is how long an email verification token stays valid in Redis.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationTokenLength is the byte length of the random verification token.
	VerificationTokenLength = 32
)
