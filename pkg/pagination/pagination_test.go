// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valeXeich/Mangalib/pkg/pagination"
)

/*
TestFromRequest verifies query parameter parsing and clamping behavior.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/manga", 1, 20},
		{"explicit", "/manga?page=3&limit=50", 3, 50},
		{"negative_page", "/manga?page=-1", 1, 20},
		{"zero_limit", "/manga?limit=0", 1, 20},
		{"excessive_limit", "/manga?limit=9999", 1, 20},
		{"garbage_values", "/manga?page=abc&limit=xyz", 1, 20},
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

/*
TestParams_Offset verifies the SQL OFFSET derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

/*
TestNewMeta verifies total page computation, including partial last pages.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		limit      int
		wantsPages int
	}{
		{"even_split", 100, 20, 5},
		{"partial_last_page", 101, 20, 6},
		{"empty", 0, 20, 0},
		{"single_item", 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)
			assert.Equal(t, tt.wantsPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
