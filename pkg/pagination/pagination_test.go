// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joycdecor/joycdecor/pkg/pagination"
)

/*
TestFromRequest covers defaults, clamping and garbage input.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   pagination.Params
		offset int
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}, 0},
		{"explicit", "?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}, 20},
		{"clamped", "?limit=500", pagination.Params{Page: 1, Limit: pagination.MaxLimit}, 0},
		{"garbage", "?page=-2&limit=abc", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/items"+tt.query, nil))
			assert.Equal(t, tt.want, params)
			assert.Equal(t, tt.offset, params.Offset())
		})
	}
}

/*
TestNewMeta checks page counting.
*/
func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, pagination.NewMeta(1, 12, 25).TotalPages)
	assert.Equal(t, 1, pagination.NewMeta(1, 12, 12).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 12, 0).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 5).TotalPages)
}
