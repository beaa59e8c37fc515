// Copyright (c) 2026 Bazario. All rights reserved.

package users_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nqhuan/bazario/internal/auth"
	"github.com/nqhuan/bazario/internal/platform/apperr"
	"github.com/nqhuan/bazario/internal/platform/sec"
	"github.com/nqhuan/bazario/internal/users"
	"github.com/nqhuan/bazario/pkg/pagination"
)

// # Test Doubles

// memoryDirectory mimics the Postgres directory queries over an in-memory
// account slice.
type memoryDirectory struct {
	accounts []*auth.User
}

func (d *memoryDirectory) List(_ context.Context, filter users.ListFilter) ([]*auth.User, int, error) {
	var matched []*auth.User
	for _, account := range d.accounts {
		if filter.Search != "" && !strings.HasPrefix(strings.ToLower(account.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, account)
	}

	switch filter.Sort {
	case users.SortAtoZ:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	case users.SortZtoA:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name > matched[j].Name })
	}

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (d *memoryDirectory) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, account := range d.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func seededService() *users.Service {
	directory := &memoryDirectory{
		accounts: []*auth.User{
			{ID: "u-1", Name: "Charlie", Email: "charlie@example.com", Role: sec.RoleUser},
			{ID: "u-2", Name: "Alice", Email: "alice@example.com", Role: sec.RoleAdmin},
			{ID: "u-3", Name: "Bob", Email: "bob@example.com", Role: sec.RoleUser},
		},
	}
	return users.NewService(directory)
}

// # Directory Listing

/*
TestService_List covers search narrowing, ordering, and pagination metadata.
*/
func TestService_List(t *testing.T) {
	service := seededService()

	tests := []struct {
		name          string
		input         users.ListInput
		expectedNames []string
		expectedTotal int
	}{
		{
			name:          "alphabetical ascending",
			input:         users.ListInput{Sort: users.SortAtoZ, Page: pagination.Params{Page: 1, Limit: 10}},
			expectedNames: []string{"Alice", "Bob", "Charlie"},
			expectedTotal: 3,
		},
		{
			name:          "alphabetical descending",
			input:         users.ListInput{Sort: users.SortZtoA, Page: pagination.Params{Page: 1, Limit: 10}},
			expectedNames: []string{"Charlie", "Bob", "Alice"},
			expectedTotal: 3,
		},
		{
			name:          "case-insensitive name prefix search",
			input:         users.ListInput{Search: "al", Page: pagination.Params{Page: 1, Limit: 10}},
			expectedNames: []string{"Alice"},
			expectedTotal: 1,
		},
		{
			name:          "second page",
			input:         users.ListInput{Sort: users.SortAtoZ, Page: pagination.Params{Page: 2, Limit: 2}},
			expectedNames: []string{"Charlie"},
			expectedTotal: 3,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			results, meta, err := service.List(context.Background(), testCase.input)
			require.NoError(t, err)

			names := make([]string, 0, len(results))
			for _, account := range results {
				names = append(names, account.Name)
			}
			assert.Equal(t, testCase.expectedNames, names)
			assert.Equal(t, testCase.expectedTotal, meta.TotalItems)
			assert.Equal(t, testCase.input.Page.Page, meta.CurrentPage)
		})
	}
}

// # Profiles

/*
TestService_GetProfile verifies lookup and the not-found path.
*/
func TestService_GetProfile(t *testing.T) {
	service := seededService()

	profile, err := service.GetProfile(context.Background(), "u-2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, sec.RoleAdmin, profile.Role)

	_, err = service.GetProfile(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

/*
TestSortOrder_IsValid verifies the accepted filter values.
*/
func TestSortOrder_IsValid(t *testing.T) {
	assert.True(t, users.SortAtoZ.IsValid())
	assert.True(t, users.SortZtoA.IsValid())
	assert.False(t, users.SortOrder("").IsValid())
	assert.False(t, users.SortOrder("newest").IsValid())
}
