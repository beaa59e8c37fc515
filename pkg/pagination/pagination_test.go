// Copyright (c) 2026 Bazario. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nqhuan/bazario/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/users", 1, 10},
		{"explicit", "/users?page=3&limit=25", 3, 25},
		{"negative_page", "/users?page=-1", 1, 10},
		{"zero_limit", "/users?limit=0", 1, 10},
		{"excessive_limit", "/users?limit=5000", 1, 10},
		{"garbage", "/users?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 10}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 45)

	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 10, meta.PerPage)
	assert.Equal(t, 45, meta.TotalItems)
	assert.Equal(t, 5, meta.TotalPages)

	// A zero limit must not divide by zero.
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 45).TotalPages)
}
