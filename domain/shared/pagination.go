package shared

// PaginatedList is one page of a query result together with the totals
// the read side needs to render paging controls.
type PaginatedList[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginatedList computes the page count from the total. pageSize must
// be positive; callers validate that before querying.
func NewPaginatedList[T any](items []T, totalCount int64, pageNumber, pageSize int) PaginatedList[T] {
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return PaginatedList[T]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// HasPreviousPage reports whether a page precedes this one.
func (p PaginatedList[T]) HasPreviousPage() bool { return p.PageNumber > 1 }

// HasNextPage reports whether a page follows this one.
func (p PaginatedList[T]) HasNextPage() bool { return p.PageNumber < p.TotalPages }
