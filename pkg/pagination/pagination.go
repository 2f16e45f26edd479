// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit query parameters for list endpoints
// and builds the "meta" block of paginated responses.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is used when the request carries no usable limit.
	DefaultLimit = 20

	// MaxLimit caps the limit of a single page. Larger requests are clamped to it.
	MaxLimit = 100

	// DefaultPage is the first page. Pages are 1-indexed.
	DefaultPage = 1
)

// Params is the page window requested by a client.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET of the window.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta builds the response metadata of the window for total matching rows.
func (p Params) Meta(total int) Meta {
	return NewMeta(p.Page, p.Limit, total)
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata, deriving TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

/*
FromRequest parses the "page" and "limit" query parameters.

Malformed or non-positive values fall back to [DefaultPage] and
[DefaultLimit]. A limit above [MaxLimit] is clamped to [MaxLimit].
*/
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page := positiveInt(query.Get("page"), DefaultPage)
	limit := min(positiveInt(query.Get("limit"), DefaultLimit), MaxLimit)

	return Params{Page: page, Limit: limit}
}

func positiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
