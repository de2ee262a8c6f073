// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides the shared list-query contract for API list endpoints.
//
// # Overview
//
// Every list endpoint accepts the same "sortBy", "limit" and "page" query
// parameters and returns the same page object:
//
//	{"results": [...], "page": 1, "limit": 10, "totalPages": 3, "totalResults": 25}
//
// Stores translate [Options] into SQL through [Options.Offset] and the parsed
// [SortField] list, and wrap their rows with [NewPage].
package pagination

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/taibuivan/temple/pkg/query"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage keeps (page-1)*limit within int for every allowed limit.
	MaxPage = math.MaxInt / MaxLimit
	// DefaultSortField is applied when no valid sort criterion is supplied.
	DefaultSortField = "createdAt"
)

// Direction is the ordering direction of a single sort criterion.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortField is one "field:direction" criterion.
type SortField struct {
	Field     string
	Direction Direction
}

// Options holds the parsed sort, page and limit of a list request.
type Options struct {
	SortBy []SortField
	Limit  int
	Page   int
}

// Offset returns the SQL OFFSET value derived from Page and Limit.
//
// It saturates at math.MaxInt instead of overflowing.
func (o Options) Offset() int {
	if o.Page <= 1 || o.Limit <= 0 {
		return 0
	}
	if o.Page-1 > math.MaxInt/o.Limit {
		return math.MaxInt
	}
	return (o.Page - 1) * o.Limit
}

// Page is the page object returned by every list endpoint.
type Page[T any] struct {
	Results      []T `json:"results"`
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

// NewPage wraps one page of results with its metadata.
//
// Results is never nil so that an empty page encodes as [] rather than null.
func NewPage[T any](results []T, opts Options, total int) Page[T] {
	if results == nil {
		results = []T{}
	}

	totalPages := 0
	if opts.Limit > 0 {
		totalPages = (total + opts.Limit - 1) / opts.Limit
	}

	return Page[T]{
		Results:      results,
		Page:         opts.Page,
		Limit:        opts.Limit,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}

// ParseSortBy parses a comma separated list of "field:direction" criteria.
//
// A missing or unrecognised direction means ascending. Empty criteria are
// skipped. Field names are returned as given; the store decides which are
// sortable.
func ParseSortBy(raw string) []SortField {
	var fields []SortField
	for _, criterion := range query.StringSlice(raw) {
		name, dir, _ := strings.Cut(criterion, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		direction := Asc
		if strings.EqualFold(strings.TrimSpace(dir), string(Desc)) {
			direction = Desc
		}
		fields = append(fields, SortField{Field: name, Direction: direction})
	}
	return fields
}

// FromRequest parses "sortBy", "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Options {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}

	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Options{
		SortBy: ParseSortBy(r.URL.Query().Get("sortBy")),
		Page:   page,
		Limit:  limit,
	}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
