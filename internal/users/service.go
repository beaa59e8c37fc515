// Copyright (c) 2026 Bazario. All rights reserved.

package users

import (
	"context"

	"github.com/nqhuan/bazario/internal/auth"
	"github.com/nqhuan/bazario/pkg/pagination"
)

// # Service Layer

// Service orchestrates read-side business logic for the user directory.
type Service struct {
	directoryRepository DirectoryRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(directoryRepo DirectoryRepository) *Service {
	return &Service{directoryRepository: directoryRepo}
}

// ListInput narrows and paginates a directory query.
type ListInput struct {
	Search string
	Sort   SortOrder
	Page   pagination.Params
}

/*
List returns a page of the user directory with pagination metadata.

Parameters:
  - context: context.Context
  - input: ListInput

Returns:
  - []*auth.User: Page of accounts (hash never serialized)
  - pagination.Meta: Total/page metadata for the response envelope
  - error: Storage failures
*/
func (service *Service) List(context context.Context, input ListInput) ([]*auth.User, pagination.Meta, error) {
	results, total, err := service.directoryRepository.List(context, ListFilter{
		Search: input.Search,
		Sort:   input.Sort,
		Limit:  input.Page.Limit,
		Offset: input.Page.Offset(),
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return results, pagination.NewMeta(input.Page.Page, input.Page.Limit, total), nil
}

/*
GetProfile retrieves a single user's public profile.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.directoryRepository.FindByID(context, userID)
}
