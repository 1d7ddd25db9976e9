package domain

import "math"

// PageSize is the fixed size of every paged listing
const PageSize = 10

// MaxPage is the largest page index whose row offset still fits in an int
const MaxPage = math.MaxInt / PageSize

// Page is a zero-based slice of a listing plus the metadata callers render
type Page[T any] struct {
	Content       []T   `json:"content"`        // Items on this page
	Page          int   `json:"page"`           // Zero-based page index
	PageSize      int   `json:"page_size"`      // Page size
	TotalElements int64 `json:"total_elements"` // Total number of items
	TotalPages    int   `json:"total_pages"`    // ceil(total / page size)
}

// NewPage wraps items fetched for page out of total
func NewPage[T any](items []T, page int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Content:       items,
		Page:          page,
		PageSize:      PageSize,
		TotalElements: total,
		TotalPages:    int((total + PageSize - 1) / PageSize),
	}
}

// Offset returns the row offset of a zero-based page. Negative pages read as 0 and
// pages past MaxPage as MaxPage.
func Offset(page int) int {
	switch {
	case page < 0:
		return 0
	case page > MaxPage:
		page = MaxPage
	}
	return page * PageSize
}
