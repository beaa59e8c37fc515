// Copyright (c) 2026 Bazario. All rights reserved.

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqhuan/bazario/internal/auth"
	"github.com/nqhuan/bazario/internal/platform/middleware"
	"github.com/nqhuan/bazario/internal/platform/sec"
)

// newTestRouter assembles the auth routes behind the real access guard,
// plus one admin-only probe route for authorization coverage.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	tokenService, err := sec.NewTokenService("http-test-secret", "bazario.test", time.Hour)
	require.NoError(t, err)

	users := newMemoryUserRepository()
	tokens := newMemoryTokenRepository()
	service := auth.NewService(users, tokens, tokenService)
	handler := auth.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService, service))
	router.Mount("/auth", handler.Routes())

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/admin-only", func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		})
	})

	return router
}

func postJSON(t *testing.T, router chi.Router, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func sessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	return nil
}

/*
TestHTTP_RegisterLoginFlow walks the full lifecycle: register, login with a
cookie-backed session, access control, logout.
*/
func TestHTTP_RegisterLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	// ── 1. Register ───────────────────────────────────────────────────────
	recorder := postJSON(t, router, "/auth/register",
		`{"name":"Alice","email":"Alice@Example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	payload := decodeBody(t, recorder)
	assert.Equal(t, true, payload["success"])
	data := payload["data"].(map[string]any)
	assert.Equal(t, "alice@example.com", data["email"])

	// The password hash must never appear in any response body
	assert.NotContains(t, recorder.Body.String(), "password")

	// ── 2. Duplicate registration (different casing) ──────────────────────
	recorder = postJSON(t, router, "/auth/register",
		`{"name":"Alice Again","email":"ALICE@example.com","password":"hunter2hunter2"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Email already exists.", decodeBody(t, recorder)["message"])

	// ── 3. Login sets the session cookie ──────────────────────────────────
	recorder = postJSON(t, router, "/auth/login",
		`{"email":"alice@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	cookie := sessionCookie(recorder)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)

	loginData := decodeBody(t, recorder)["data"].(map[string]any)
	assert.Equal(t, cookie.Value, loginData["accessToken"])

	// ── 4. Cookie authenticates, but USER may not reach admin routes ──────
	request := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	request.AddCookie(cookie)
	probe := httptest.NewRecorder()
	router.ServeHTTP(probe, request)
	assert.Equal(t, http.StatusForbidden, probe.Code)

	// ── 5. Logout clears the cookie ───────────────────────────────────────
	recorder = postJSON(t, router, "/auth/logout", ``, cookie)
	require.Equal(t, http.StatusOK, recorder.Code)

	cleared := sessionCookie(recorder)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

/*
TestHTTP_LoginRejections verifies the credential failure paths.
*/
func TestHTTP_LoginRejections(t *testing.T) {
	router := newTestRouter(t)

	recorder := postJSON(t, router, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Wrong password → 401 and no cookie
	recorder = postJSON(t, router, "/auth/login",
		`{"email":"bob@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, sessionCookie(recorder))

	// Unknown email → identical 401 (no enumeration)
	recorder = postJSON(t, router, "/auth/login",
		`{"email":"eve@example.com","password":"hunter2hunter2"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Missing fields → 400 validation envelope
	recorder = postJSON(t, router, "/auth/login", `{"email":"bob@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHTTP_LogoutRequiresAuth verifies that anonymous logout is rejected.
*/
func TestHTTP_LogoutRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	recorder := postJSON(t, router, "/auth/logout", ``)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Unauthorized Access", decodeBody(t, recorder)["message"])
}

/*
TestHTTP_RegisterMinimalInput verifies the lower bounds of accepted input:
a single-character name is valid, and the password floor is six characters.
*/
func TestHTTP_RegisterMinimalInput(t *testing.T) {
	router := newTestRouter(t)

	// 1-char name with a 6-char password registers fine
	recorder := postJSON(t, router, "/auth/register",
		`{"name":"A","email":"a@x.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	data := decodeBody(t, recorder)["data"].(map[string]any)
	assert.Equal(t, "A", data["name"])

	// The registered account can log in
	recorder = postJSON(t, router, "/auth/login",
		`{"email":"a@x.com","password":"secret"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// A 5-char password stays below the floor
	recorder = postJSON(t, router, "/auth/register",
		`{"name":"B","email":"b@x.com","password":"five5"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHTTP_RegisterValidation verifies the field-level validation envelope.
*/
func TestHTTP_RegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	recorder := postJSON(t, router, "/auth/register",
		`{"name":"A","email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	payload := decodeBody(t, recorder)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Validation failed", payload["message"])
	assert.NotEmpty(t, payload["details"])

	// Unknown role value is rejected
	recorder = postJSON(t, router, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"hunter2hunter2","role":"SUPERUSER"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
