// Package pagination windows an in-memory result set and filters it with
// optional, AND-combined predicates.
package pagination

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is one window of a larger result set plus its metadata.
type Page[T any] struct {
	Items           []T
	TotalCount      int
	PageSize        int
	CurrentPage     int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// Normalize clamps a page number to >= 1 and a page size to [1, MaxPageSize],
// falling back to DefaultPageSize when out of range.
func Normalize(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return pageNumber, pageSize
}

// New returns the requested window of items. A page past the end is empty
// but still reports the real totals.
func New[T any](items []T, pageNumber, pageSize int) *Page[T] {
	pageNumber, pageSize = Normalize(pageNumber, pageSize)

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (pageNumber - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return &Page[T]{
		Items:           window,
		TotalCount:      total,
		PageSize:        pageSize,
		CurrentPage:     pageNumber,
		TotalPages:      totalPages,
		HasNextPage:     pageNumber < totalPages,
		HasPreviousPage: pageNumber > 1,
	}
}

// Map converts the items of a page while keeping its metadata.
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := make([]U, len(p.Items))
	for i, it := range p.Items {
		out[i] = fn(it)
	}
	return &Page[U]{
		Items:           out,
		TotalCount:      p.TotalCount,
		PageSize:        p.PageSize,
		CurrentPage:     p.CurrentPage,
		TotalPages:      p.TotalPages,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}
