// Copyright (c) 2026 Bazario. All rights reserved.

// HTTP delivery layer for the category catalogue.
//
// # Routing Strategy
//
//   - Public: Discovery endpoints accessible to all visitors (GET).
//   - Restricted: Mutative endpoints requiring the Admin role (POST, PATCH, DELETE).
//
// Mutations accept multipart/form-data so the category image travels in the
// same request as its metadata.
package category

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nqhuan/bazario/internal/platform/middleware"
	requestutil "github.com/nqhuan/bazario/internal/platform/request"
	"github.com/nqhuan/bazario/internal/platform/respond"
	"github.com/nqhuan/bazario/internal/platform/sec"
	"github.com/nqhuan/bazario/internal/platform/validate"
	"github.com/nqhuan/bazario/pkg/pagination"
	"github.com/nqhuan/bazario/pkg/pointer"
)

// maxImageMemory bounds the in-memory portion of multipart parsing (10 MiB).
const maxImageMemory = 10 << 20

// # Definitions & Constructors

// Handler implements category HTTP endpoints.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] configured with category routes.
//
// # Endpoints
//   - GET    /             : Public paginated listing.
//   - GET    /{categoryID} : Public single lookup.
//   - POST   /             : ADMIN create (multipart).
//   - PATCH  /{categoryID} : ADMIN partial update (multipart).
//   - DELETE /{categoryID} : ADMIN removal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public discovery
	router.Get("/", handler.list)
	router.Get("/{categoryID}", handler.get)

	// Admin mutations
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.create)
		r.Patch("/{categoryID}", handler.update)
		r.Delete("/{categoryID}", handler.remove)
	})

	return router
}

/*
Create adds a new category node.

POST /api/v1/category (multipart/form-data)

Description: ADMIN-only. Accepts name, slug?, description?, parent_category?
fields plus an optional image file. The caller becomes the recorded creator.

Response:
  - 200: Category: Created node
  - 400: ErrValidation: Bad fields, unsupported image, or slug already exists
  - 404: ErrNotFound: Unknown parent category
  - 401/403: Guard rejections
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(maxImageMemory); err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldImage, "Malformed multipart payload"))
		return
	}

	name := request.FormValue(FieldName)
	slugValue := request.FormValue(FieldSlug)
	parentValue := request.FormValue(FieldParentCategory)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 120)
	if slugValue != "" {
		validator.Slug(FieldSlug, slugValue)
	}
	if parentValue != "" {
		validator.UUID(FieldParentCategory, parentValue)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	imageUpload, closeUpload, err := formImage(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUpload()

	var parentID *string
	if parentValue != "" {
		parentID = pointer.To(parentValue)
	}

	created, err := handler.categoryService.Create(request.Context(), CreateInput{
		Name:        name,
		Slug:        slugValue,
		Description: request.FormValue(FieldDescription),
		ParentID:    parentID,
		CreatedBy:   identity,
		Image:       imageUpload,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category created successfully", created)
}

/*
List returns the paginated category catalogue.

GET /api/v1/category?page=&limit=&search=&parent_id=

Description: Public. Without parent_id only top-level categories are
returned; with parent_id, the direct children of that node.

Response:
  - 200: []Category + pagination metadata
  - 400: ErrValidation: Malformed parent_id
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	var parentID *string
	if parentValue := queryValues.Get("parent_id"); parentValue != "" {
		validator := &validate.Validator{}
		if err := validator.UUID("parent_id", parentValue).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
		parentID = pointer.To(parentValue)
	}

	results, meta, err := handler.categoryService.List(request.Context(), ListInput{
		Search:   queryValues.Get("search"),
		ParentID: parentID,
		Page:     pagination.FromRequest(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Categories fetched successfully", results, meta)
}

/*
Get returns a single category by ID.

GET /api/v1/category/{categoryID}

Response:
  - 200: Category
  - 404: ErrNotFound: Unknown category
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	categoryID := requestutil.Param(request, "categoryID")

	category, err := handler.categoryService.Get(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category fetched successfully", category)
}

/*
Update applies a partial update to a category.

PATCH /api/v1/category/{categoryID} (multipart/form-data)

Description: ADMIN-only. Only the supplied fields change. Sending
parent_category with an empty value promotes the node back to the top level;
supplying an image file replaces the stored object.

Response:
  - 200: Category: Updated node
  - 400: ErrValidation: Bad fields or self-parenting
  - 404: ErrNotFound: Unknown category or parent
  - 401/403: Guard rejections
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	categoryID := requestutil.Param(request, "categoryID")

	if err := request.ParseMultipartForm(maxImageMemory); err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldImage, "Malformed multipart payload"))
		return
	}

	input := UpdateInput{}
	validator := &validate.Validator{}

	if values, ok := request.MultipartForm.Value[FieldName]; ok && len(values) > 0 {
		validator.Required(FieldName, values[0]).MaxLen(FieldName, values[0], 120)
		input.Name = pointer.To(values[0])
	}

	if values, ok := request.MultipartForm.Value[FieldSlug]; ok && len(values) > 0 {
		validator.Slug(FieldSlug, values[0])
		input.Slug = pointer.To(values[0])
	}

	if values, ok := request.MultipartForm.Value[FieldDescription]; ok && len(values) > 0 {
		input.Description = pointer.To(values[0])
	}

	if values, ok := request.MultipartForm.Value[FieldParentCategory]; ok && len(values) > 0 {
		input.ParentProvided = true
		if values[0] != "" {
			validator.UUID(FieldParentCategory, values[0])
			input.ParentID = pointer.To(values[0])
		}
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	imageUpload, closeUpload, err := formImage(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUpload()
	input.Image = imageUpload

	updated, err := handler.categoryService.Update(request.Context(), categoryID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category updated successfully", updated)
}

/*
Remove deletes a category.

DELETE /api/v1/category/{categoryID}

Description: ADMIN-only. Child categories are detached to the top level and
the stored image is removed.

Response:
  - 200: Success: Category deleted
  - 404: ErrNotFound: Unknown category
  - 401/403: Guard rejections
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	categoryID := requestutil.Param(request, "categoryID")

	if err := handler.categoryService.Delete(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category deleted successfully", nil)
}

// formImage extracts the optional "image" multipart file.
//
// Returns a nil upload when the field is absent. The returned close function
// is always safe to defer.
func formImage(request *http.Request) (*ImageUpload, func(), error) {
	file, header, err := request.FormFile(FieldImage)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, func() {}, nil
		}
		return nil, func() {}, validate.RequiredError(FieldImage, "Malformed image upload")
	}

	return &ImageUpload{
		Content:     file,
		Size:        header.Size,
		ContentType: imageContentType(header),
	}, func() { _ = file.Close() }, nil
}

// imageContentType reads the declared MIME type from the part header.
func imageContentType(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}
