// Copyright (c) 2026 Bazario. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqhuan/bazario/internal/platform/sec"
)

func newTokenService(t *testing.T, ttl time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("unit-test-secret", "bazario.test", ttl)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that a generated token carries the full
claim set back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, time.Hour)

	token, expiresAt, err := service.GenerateAccessToken("user-1", "Alice", "alice@example.com", sec.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Expiry aligns with the configured TTL
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, sec.RoleAdmin, claims.Role)
	assert.Equal(t, "bazario.test", claims.Issuer)
}

/*
TestTokenService_Expired verifies that verification fails once the validity
window has passed, even though the signature is intact.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTokenService(t, time.Millisecond)

	token, _, err := service.GenerateAccessToken("user-1", "Alice", "alice@example.com", sec.RoleUser)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies that a token signed under a different
secret is rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuing := newTokenService(t, time.Hour)

	other, err := sec.NewTokenService("a-different-secret", "bazario.test", time.Hour)
	require.NoError(t, err)

	token, _, err := issuing.GenerateAccessToken("user-1", "Alice", "alice@example.com", sec.RoleUser)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Malformed verifies that garbage input never verifies.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTokenService(t, time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := service.VerifyToken(tokenString)
		assert.Error(t, err, "token %q must not verify", tokenString)
	}
}

/*
TestNewTokenService_Validation verifies constructor input checking.
*/
func TestNewTokenService_Validation(t *testing.T) {
	_, err := sec.NewTokenService("", "issuer", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService("secret", "issuer", 0)
	assert.Error(t, err)
}

/*
TestUserRole_In verifies the set-membership role check.
*/
func TestUserRole_In(t *testing.T) {
	assert.True(t, sec.RoleAdmin.In(sec.RoleAdmin))
	assert.True(t, sec.RoleUser.In(sec.RoleUser, sec.RoleAdmin))
	assert.False(t, sec.RoleUser.In(sec.RoleAdmin))
	assert.False(t, sec.RoleAdmin.In())
}
