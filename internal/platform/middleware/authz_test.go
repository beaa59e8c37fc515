// Copyright (c) 2026 Bazario. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqhuan/bazario/internal/platform/apperr"
	"github.com/nqhuan/bazario/internal/platform/ctxutil"
	"github.com/nqhuan/bazario/internal/platform/middleware"
	"github.com/nqhuan/bazario/internal/platform/sec"
)

// # Test Doubles

type fakeVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (f *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

type fakeResolver struct {
	identity *sec.Identity
	err      error
}

func (f *fakeResolver) ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

// echoIdentity records whether the inner handler ran and what identity it saw.
func echoIdentity(ran *bool, seen **sec.Identity) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*ran = true
		*seen = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

// # Authenticate

/*
TestAuthenticate_NoToken verifies that anonymous requests pass through the
guard without an identity.
*/
func TestAuthenticate_NoToken(t *testing.T) {
	var ran bool
	var seen *sec.Identity

	handler := middleware.Authenticate(&fakeVerifier{}, &fakeResolver{})(echoIdentity(&ran, &seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.True(t, ran)
	assert.Nil(t, seen)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestAuthenticate_InvalidToken verifies that a present-but-unverifiable token
is a hard 401 with the standard error envelope.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	var ran bool
	var seen *sec.Identity

	verifier := &fakeVerifier{err: assert.AnError}
	handler := middleware.Authenticate(verifier, &fakeResolver{})(echoIdentity(&ran, &seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer bad-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	payload := decodeError(t, recorder)
	assert.Equal(t, "Invalid or expired token", payload["message"])
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, float64(http.StatusUnauthorized), payload["statusCode"])
}

/*
TestAuthenticate_DeletedUser verifies that a valid token whose subject no
longer resolves is rejected.
*/
func TestAuthenticate_DeletedUser(t *testing.T) {
	var ran bool
	var seen *sec.Identity

	verifier := &fakeVerifier{claims: &sec.AuthClaims{UserID: "gone"}}
	resolver := &fakeResolver{err: apperr.NotFound("User")}
	handler := middleware.Authenticate(verifier, resolver)(echoIdentity(&ran, &seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer some-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_Success verifies the full path: token verified, identity
resolved, context populated with the LIVE role from storage.
*/
func TestAuthenticate_Success(t *testing.T) {
	var ran bool
	var seen *sec.Identity

	// The claim says USER but storage says ADMIN; the live value wins.
	verifier := &fakeVerifier{claims: &sec.AuthClaims{UserID: "user-1", Role: sec.RoleUser}}
	resolver := &fakeResolver{identity: &sec.Identity{ID: "user-1", Role: sec.RoleAdmin}}
	handler := middleware.Authenticate(verifier, resolver)(echoIdentity(&ran, &seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.True(t, ran)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.ID)
	assert.Equal(t, sec.RoleAdmin, seen.Role)
}

// # Token Extraction

/*
TestExtractToken covers the cookie-before-header precedence rules.
*/
func TestExtractToken(t *testing.T) {
	tests := []struct {
		name     string
		cookie   string
		header   string
		expected string
	}{
		{name: "no sources", expected: ""},
		{name: "cookie only", cookie: "cookie-token", expected: "cookie-token"},
		{name: "header only", header: "Bearer header-token", expected: "header-token"},
		{name: "cookie wins over header", cookie: "cookie-token", header: "Bearer header-token", expected: "cookie-token"},
		{name: "case-insensitive scheme", header: "bearer lower-token", expected: "lower-token"},
		{name: "wrong scheme ignored", header: "Basic dXNlcjpwYXNz", expected: ""},
		{name: "scheme without value ignored", header: "Bearer", expected: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if testCase.cookie != "" {
				request.AddCookie(&http.Cookie{Name: "token", Value: testCase.cookie})
			}
			if testCase.header != "" {
				request.Header.Set("Authorization", testCase.header)
			}

			assert.Equal(t, testCase.expected, middleware.ExtractToken(request))
		})
	}
}

// # Enforcement

/*
TestRequireAuth verifies anonymous rejection and authenticated pass-through.
*/
func TestRequireAuth(t *testing.T) {
	var ran bool
	var seen *sec.Identity
	handler := middleware.RequireAuth(echoIdentity(&ran, &seen))

	// Anonymous → 401
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ran)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated → pass
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := ctxutil.WithIdentity(request.Context(), &sec.Identity{ID: "user-1", Role: sec.RoleUser})
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request.WithContext(ctx))
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole verifies the authorization outcomes of the role-set check.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		identity       *sec.Identity
		required       []sec.UserRole
		expectedStatus int
	}{
		{
			name:           "anonymous is 401",
			identity:       nil,
			required:       []sec.UserRole{sec.RoleAdmin},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "role miss is 403",
			identity:       &sec.Identity{ID: "u", Role: sec.RoleUser},
			required:       []sec.UserRole{sec.RoleAdmin},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "role match passes",
			identity:       &sec.Identity{ID: "u", Role: sec.RoleAdmin},
			required:       []sec.UserRole{sec.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "membership in multi-role set passes",
			identity:       &sec.Identity{ID: "u", Role: sec.RoleUser},
			required:       []sec.UserRole{sec.RoleUser, sec.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var ran bool
			var seen *sec.Identity
			handler := middleware.RequireRole(testCase.required...)(echoIdentity(&ran, &seen))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if testCase.identity != nil {
				request = request.WithContext(ctxutil.WithIdentity(request.Context(), testCase.identity))
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.expectedStatus, recorder.Code)
			assert.Equal(t, testCase.expectedStatus == http.StatusOK, ran)

			if testCase.expectedStatus == http.StatusForbidden {
				payload := decodeError(t, recorder)
				assert.Equal(t, "Forbidden Access", payload["message"])
			}
		})
	}
}
