package utils

import "math"

// Pagination represents the pagination details.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems, page, pageSize int) *Pagination {
	if pageSize <= 0 {
		pageSize = 10 // Default page size
	}
	if page <= 0 {
		page = 1 // Default page
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return &Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

// PageBounds returns the slice bounds of a page over totalItems elements.
// Pages past the end yield an empty range at totalItems.
func PageBounds(totalItems, page, pageSize int) (int, int) {
	p := CreatePagination(totalItems, page, pageSize)
	if totalItems <= 0 || p.CurrentPage-1 > totalItems/p.PageSize {
		return max(totalItems, 0), max(totalItems, 0)
	}
	start := (p.CurrentPage - 1) * p.PageSize
	if start > totalItems {
		start = totalItems
	}
	end := totalItems
	if p.PageSize < totalItems-start {
		end = start + p.PageSize
	}
	return start, end
}
