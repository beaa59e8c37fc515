// Copyright (c) 2026 Bazario. All rights reserved.

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nqhuan/bazario/internal/platform/middleware"
	requestutil "github.com/nqhuan/bazario/internal/platform/request"
	"github.com/nqhuan/bazario/internal/platform/respond"
	"github.com/nqhuan/bazario/internal/platform/sec"
	"github.com/nqhuan/bazario/internal/platform/validate"
	"github.com/nqhuan/bazario/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements user directory HTTP endpoints.
type Handler struct {
	usersService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{usersService: service}
}

// Routes returns a [chi.Router] configured with user directory routes.
//
// # Endpoints
//   - GET /         : ADMIN-only paginated directory.
//   - GET /current  : Authenticated caller's own profile.
//   - GET /{userID} : Public profile lookup.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Admin directory
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/", handler.list)
	})

	// Authenticated self profile. Registered before /{userID} so chi never
	// treats "current" as an ID.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/current", handler.current)
	})

	// Public profile
	router.Get("/{userID}", handler.get)

	return router
}

/*
List returns the paginated user directory.

GET /api/v1/users?page=&limit=&search=&filter=

Description: ADMIN-only directory. Supports case-insensitive name prefix
search and alphabetical ordering (atoz | ztoa).

Response:
  - 200: []User + pagination metadata
  - 400: ErrValidation: Unknown filter value
  - 401/403: Guard rejections
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()
	sort := SortOrder(queryValues.Get("filter"))

	if sort != "" && !sort.IsValid() {
		respond.Error(writer, request, validate.RequiredError("filter", "Must be one of: atoz, ztoa"))
		return
	}

	results, meta, err := handler.usersService.List(request.Context(), ListInput{
		Search: queryValues.Get("search"),
		Sort:   sort,
		Page:   pagination.FromRequest(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Users fetched successfully", results, meta)
}

/*
Current returns the authenticated caller's own profile.

GET /api/v1/users/current

Description: The profile comes straight from the identity resolved by the
access guard, so it always reflects live storage (role changes included).

Response:
  - 200: Identity
  - 401: ErrUnauthorized: Anonymous caller
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Current user fetched successfully", identity)
}

/*
Get returns a user's public profile by ID.

GET /api/v1/users/{userID}

Response:
  - 200: User (hash excluded)
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	user, err := handler.usersService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User fetched successfully", user)
}
