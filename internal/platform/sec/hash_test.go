// Copyright (c) 2026 Bazario. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqhuan/bazario/internal/platform/sec"
)

/*
TestHashPassword verifies that hashing never stores the plaintext and that
every call produces a distinct salt.
*/
func TestHashPassword(t *testing.T) {
	password := "correct horse battery staple"

	first, err := sec.HashPassword(password)
	require.NoError(t, err)
	second, err := sec.HashPassword(password)
	require.NoError(t, err)

	// 1. Hash must never equal the plaintext
	assert.NotEqual(t, password, first)
	assert.NotEqual(t, password, second)

	// 2. Per-call salt: two hashes of the same input differ
	assert.NotEqual(t, first, second)

	// 3. Both still verify
	assert.True(t, sec.CheckPasswordHash(password, first))
	assert.True(t, sec.CheckPasswordHash(password, second))
}

/*
TestCheckPasswordHash verifies that mismatches report false without error.
*/
func TestCheckPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("super-secret-1")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("super-secret-1", hash))
	assert.False(t, sec.CheckPasswordHash("super-secret-2", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
	assert.False(t, sec.CheckPasswordHash("super-secret-1", "not-a-bcrypt-hash"))
}
