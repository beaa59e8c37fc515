// Copyright (c) 2026 Bazario. All rights reserved.

/*
Service layer for the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
stateless session establishment via signed JWTs.

Architecture:

  - Service: Orchestrates business logic (Register, Login, VerifyEmail).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Tokens).
  - Security: Leverages Bcrypt hashing and HS256-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nqhuan/bazario/internal/platform/apperr"
	"github.com/nqhuan/bazario/internal/platform/sec"
	"github.com/nqhuan/bazario/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - name: The display name of the account.
	//   - email: The normalized email of the account.
	//   - role: The role of the account.
	//
	// # Returns
	//   - A signed JWT string, its absolute expiry, or an err if signing fails.
	GenerateAccessToken(userID, name, email string, role sec.UserRole) (string, time.Time, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository              UserRepository
	verificationTokenRepository VerificationTokenRepository
	tokenProvider               TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	verifyRepo VerificationTokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:              userRepo,
		verificationTokenRepository: verifyRepo,
		tokenProvider:               tokenProv,
	}
}

// NormalizeEmail lowercases and trims an email address.
//
// Every read and write path goes through this normalization, which makes
// email equality case-insensitive without relying on collation tricks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     sec.UserRole
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member, handling password hashing and
initial verification token state. The duplicate pre-check is an optimization
for a friendly fast-path error; the unique index on email remains the
authoritative arbiter under concurrent registration.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (hash never serialized)
  - err: Duplicate (if email exists, any casing) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Normalize the email before any storage interaction
	email := NormalizeEmail(input.Email)

	// Verify email uniqueness. Return a client-safe Duplicate err.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Duplicate(FieldEmail)
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Unspecified role falls back to the standard member role
	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:              uuid.New(),
		Name:            input.Name,
		Email:           email,
		PasswordHash:    hashedPassword,
		Phone:           input.Phone,
		Role:            role,
		IsEmailVerified: false,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Generate and store a verification token in Redis as an async-ready side effect
	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err == nil {
		_ = service.verificationTokenRepository.Set(context, token, user.ID, VerificationTokenTTL)
		// TODO: Trigger the mail service with the verification link
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established stateless session.
type LoginSession struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

/*
Login validates user credentials and issues the access token.

Description: Verifies identity, performs constant-time password comparison,
and mints a signed JWT carrying the account role.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session credentials
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Look up the account by normalized email
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(input.Email))

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Mint the signed Access Token
	accessToken, expiresAt, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Name, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// # Email Verification

/*
VerifyEmail confirms a user's email address using a secure one-shot token.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - err: NotFound (invalid/expired token) or database errors
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {

	// Retrieve the user ID associated with the verification token from Redis
	userID, err := service.verificationTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	// Update the user's status to verified in persistent storage
	if err := service.userRepository.MarkEmailVerified(context, userID); err != nil {
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}

	// Cleanup the used verification token from Redis
	_ = service.verificationTokenRepository.Delete(context, token)

	return nil
}

// # Identity Resolution

/*
ResolveIdentity re-reads the account behind a verified token subject.

Description: Implements the access guard's resolver contract. Claims reflect
the account state at issue time; resolving against live storage means role
changes apply immediately and tokens for deleted accounts stop working even
though their signatures remain valid.

Parameters:
  - context: context.Context
  - userID: string (verified token subject)

Returns:
  - *sec.Identity: Live, hash-free identity
  - err: NotFound when the account no longer exists
*/
func (service *Service) ResolveIdentity(context context.Context, userID string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}
