// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pagination reads page windows from gallery requests and describes
them in list responses.

Pages are 1-indexed. The console walks the whole catalog with
?limit=[MaxLimit] until it reaches [Meta.TotalPages].
*/
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit fills a gallery grid of three rows of four cards.
	DefaultLimit = 12
	// MaxLimit bounds one page; larger requests are clamped to it.
	MaxLimit = 100
)

// Params is a requested page window.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows before the window.
func (params Params) Offset() int {
	return (params.Page - 1) * params.Limit
}

// Meta describes the window actually served.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta derives the page count from total and limit.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads "page" and "limit". Missing or unparsable values fall back
// to page 1 and [DefaultLimit]; a limit above [MaxLimit] is clamped.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	params := Params{Page: 1, Limit: DefaultLimit}
	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		params.Limit = min(limit, MaxLimit)
	}
	return params
}
