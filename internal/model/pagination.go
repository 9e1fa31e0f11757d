package model

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is a 1-based page request.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPagination normalises raw values: anything below 1 falls back to the
// default, and limit is capped at MaxLimit. page is capped so that Offset
// cannot overflow; such a page is past the last row and reads as empty.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset is the number of rows to skip: (page-1)*limit.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
