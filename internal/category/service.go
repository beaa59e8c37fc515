// Copyright (c) 2026 Bazario. All rights reserved.

package category

import (
	"context"
	"io"
	"time"

	"github.com/nqhuan/bazario/internal/platform/apperr"
	"github.com/nqhuan/bazario/internal/platform/sec"
	"github.com/nqhuan/bazario/pkg/pagination"
	"github.com/nqhuan/bazario/pkg/slug"
	"github.com/nqhuan/bazario/pkg/uuid"
)

// # Contracts & Types

// imagePrefix is the object-store folder for category images.
const imagePrefix = "categories"

// imageExtensions maps accepted upload MIME types to stored extensions.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore defines the object storage contract for category images.
type ImageStore interface {
	// Upload stores content under the prefix and returns the public URL.
	Upload(ctx context.Context, prefix string, ext string, contentType string, content io.Reader, size int64) (string, error)
	// Remove deletes the object behind a previously returned URL.
	Remove(ctx context.Context, objectURL string) error
}

// ImageUpload carries one decoded multipart file for storage.
type ImageUpload struct {
	Content     io.Reader
	Size        int64
	ContentType string
}

// Service orchestrates business logic for the category tree.
type Service struct {
	repository Repository
	images     ImageStore
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, images ImageStore) *Service {
	return &Service{
		repository: repository,
		images:     images,
	}
}

// # Creation

// CreateInput holds the data required to create a category.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
	ParentID    *string
	CreatedBy   *sec.Identity
	Image       *ImageUpload
}

/*
Create validates and persists a new category node.

Description: Derives the slug from the name when absent, verifies the parent
exists, uploads the image to object storage, and records the creating admin.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Category: Created entity with hydrated creator
  - err: Validation, NotFound (parent), Duplicate (slug), or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {

	// Derive the slug from the name when the client omits it
	categorySlug := input.Slug
	if categorySlug == "" {
		categorySlug = slug.From(input.Name)
	}

	// A named parent must exist before we hang a child off it
	if input.ParentID != nil {
		if _, err := service.repository.FindByID(context, *input.ParentID); err != nil {
			return nil, apperr.NotFound("Parent category")
		}
	}

	// Upload the image before touching the database; a failed insert
	// triggers best-effort cleanup below.
	imageURL := ""
	if input.Image != nil {
		uploaded, err := service.uploadImage(context, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = uploaded
	}

	now := time.Now()
	category := &Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        categorySlug,
		Description: input.Description,
		Image:       imageURL,
		ParentID:    input.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.CreatedBy != nil {
		category.CreatedBy = &Creator{
			ID:    input.CreatedBy.ID,
			Name:  input.CreatedBy.Name,
			Email: input.CreatedBy.Email,
			Role:  input.CreatedBy.Role,
		}
	}

	if err := service.repository.Create(context, category); err != nil {
		if imageURL != "" {
			_ = service.images.Remove(context, imageURL)
		}
		return nil, err
	}

	return category, nil
}

// # Retrieval

// ListInput narrows and paginates a category listing.
type ListInput struct {
	Search string
	// ParentID scopes to children of one node; nil means top-level only.
	ParentID *string
	Page     pagination.Params
}

/*
List returns a page of the category tree with pagination metadata.

Parameters:
  - context: context.Context
  - input: ListInput

Returns:
  - []*Category: Page of categories with hydrated creators
  - pagination.Meta: Total/page metadata for the response envelope
  - err: Storage failures
*/
func (service *Service) List(context context.Context, input ListInput) ([]*Category, pagination.Meta, error) {
	results, total, err := service.repository.List(context, ListFilter{
		Search:   input.Search,
		ParentID: input.ParentID,
		Limit:    input.Page.Limit,
		Offset:   input.Page.Offset(),
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return results, pagination.NewMeta(input.Page.Page, input.Page.Limit, total), nil
}

/*
Get returns a single category by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Category: Hydrated entity
  - err: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Category, error) {
	return service.repository.FindByID(context, id)
}

// # Mutation

// UpdateInput defines the mutable subset of category fields.
//
// Pointer fields distinguish "leave unchanged" (nil) from "set to value".
// Parent reassignment is explicit via ParentProvided so a category can be
// promoted back to the top level.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string

	ParentProvided bool
	ParentID       *string

	Image *ImageUpload
}

/*
Update applies a partial set of changes to a category.

Description: Fetches the existing state, overlays provided fields, and when a
replacement image is supplied uploads the new object first and deletes the old
one only after the row update succeeds.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Category: Updated entity
  - err: NotFound, Validation (self-parenting), Duplicate (slug), or storage errors
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Category, error) {

	category, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Overlay the provided fields
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Slug != nil {
		category.Slug = *input.Slug
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	// Parent reassignment: validate existence and reject self-parenting
	if input.ParentProvided {
		if input.ParentID != nil {
			if *input.ParentID == id {
				return nil, apperr.ValidationError("A category cannot be its own parent")
			}
			if _, err := service.repository.FindByID(context, *input.ParentID); err != nil {
				return nil, apperr.NotFound("Parent category")
			}
		}
		category.ParentID = input.ParentID
	}

	// Optional image replacement: new object first, old removal last
	oldImage := ""
	if input.Image != nil {
		uploaded, err := service.uploadImage(context, input.Image)
		if err != nil {
			return nil, err
		}
		oldImage = category.Image
		category.Image = uploaded
	}

	category.UpdatedAt = time.Now()

	if err := service.repository.Update(context, category); err != nil {
		if input.Image != nil {
			_ = service.images.Remove(context, category.Image)
		}
		return nil, err
	}

	if oldImage != "" {
		_ = service.images.Remove(context, oldImage)
	}

	return category, nil
}

/*
Delete removes a category node and its stored image.

Description: Children survive the removal; the FK detaches them to the top
level. The image object is removed best-effort after the row is gone.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - err: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id string) error {

	category, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	if category.Image != "" {
		_ = service.images.Remove(context, category.Image)
	}

	return nil
}

// uploadImage validates the MIME type and stores the upload.
func (service *Service) uploadImage(context context.Context, upload *ImageUpload) (string, error) {
	ext, ok := imageExtensions[upload.ContentType]
	if !ok {
		return "", apperr.ValidationError("Unsupported image type", apperr.FieldError{
			Field:   FieldImage,
			Message: "Must be one of: PNG, JPEG, WebP, GIF",
		})
	}

	return service.images.Upload(context, imagePrefix, ext, upload.ContentType, upload.Content, upload.Size)
}
