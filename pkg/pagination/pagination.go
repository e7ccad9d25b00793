// Package pagination provides types and utilities for paged list retrieval.
package pagination

import (
	"net/url"
	"strconv"
)

// PageRequest identifies one page of a listing.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize adjusts the request to ensure valid pagination values.
// Missing or unparsable values fall back to the configured default;
// values below one are clamped to one.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit < 1 {
		r.Limit = 1
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
}

// Offset calculates the number of records to skip for this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// FromQuery parses page and limit from URL query values and normalizes
// the result according to the provided config.
func FromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	req := PageRequest{Page: page, Limit: limit}
	req.Normalize(cfg)
	return req
}

// PageResult holds one page of data along with pagination metadata.
type PageResult[T any] struct {
	Data    []T  `json:"data"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// NewPageResult creates a PageResult echoing the request and computing
// whether more records exist beyond this page.
func NewPageResult[T any](data []T, total int, req PageRequest) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:    data,
		Page:    req.Page,
		Limit:   req.Limit,
		Total:   total,
		HasMore: req.Offset()+len(data) < total,
	}
}
