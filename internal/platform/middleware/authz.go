// Copyright (c) 2026 Bazario. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nqhuan/bazario/internal/platform/apperr"
	"github.com/nqhuan/bazario/internal/platform/constants"
	"github.com/nqhuan/bazario/internal/platform/ctxutil"
	"github.com/nqhuan/bazario/internal/platform/respond"
	"github.com/nqhuan/bazario/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// IdentityResolver resolves a verified subject id into a live identity.
//
// # Why resolve at all?
//
// Token claims are a snapshot from issue time. The guard re-reads the account
// from the credential store so that role changes apply immediately and tokens
// for deleted accounts stop working, even though the signature is still valid.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error)
}

// Authenticate extracts and verifies the access token, then resolves the
// caller identity into the request context.
//
// # Flow
//  1. Look for the token in the 'token' cookie, then in the
//     'Authorization: Bearer <token>' header. First found wins.
//  2. If absent, the request proceeds as anonymous — [RequireAuth] or
//     [RequireRole] decide whether anonymous is acceptable per route.
//  3. If present, verify signature and expiry via [TokenVerifier].
//  4. Resolve the subject id against live storage via [IdentityResolver].
//  5. Inject [*sec.Identity] into the request context for downstream use.
//
// Verification and resolution failures are hard rejects for the request;
// there is no retry and no fallback.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			tokenStr := ExtractToken(request)
			if tokenStr == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			// The record may have been deleted since the token was issued.
			identity, err := resolver.ResolveIdentity(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized Access"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// ExtractToken returns the bearer credential carried by the request.
//
// The cookie is checked before the Authorization header; the first source
// that yields a value wins. Returns "" when neither carries a token.
func ExtractToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Unauthorized Access"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose resolved identity is not a member of the
// required-role set.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
//
// This is the single reusable authorization check: routes declare their
// required roles explicitly instead of relying on handler-local role logic.
func RequireRole(roles ...sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized Access"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !identity.Role.In(roles...) {
				respond.Error(writer, request, apperr.Forbidden("Forbidden Access"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
