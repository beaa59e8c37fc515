// Copyright (c) 2026 Bazario. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [auth.TokenProvider] interface.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The claim set is intentionally flat: subject id, name, email, and role,
// plus the registered issued-at/expiry pair. Nothing secret beyond the
// signature itself is ever embedded.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// # Key Handling
//
// The signing secret is process-wide state loaded once at startup from the
// environment and never mutated. Rotating the secret invalidates every
// previously issued token.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService from the configured secret,
// issuer name, and default token lifetime.
func NewTokenService(secret, issuer string, timeToLive time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: access token secret must not be empty")
	}
	if timeToLive <= 0 {
		return nil, fmt.Errorf("sec: access token lifetime must be positive")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    timeToLive,
	}, nil
}

// TTL returns the configured access token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// GenerateAccessToken creates a new signed JWT for a user.
//
// # Returns
//   - The signed token string.
//   - The absolute expiry timestamp (for cookie MaxAge alignment).
func (service *TokenService) GenerateAccessToken(userID, name, email string, role UserRole) (string, time.Time, error) {
	currentTime := time.Now()
	expiresAt := currentTime.Add(service.ttl)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// VerifyToken checks the signature and validity window of a JWT string.
//
// A token is valid iff its signature matches the process signing secret AND
// the current time is before its expiry. Malformed, tampered, and expired
// tokens all fail here.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
