package shared

import "math"

const (
	// DefaultPerPage is used when no page size is supplied.
	DefaultPerPage = 20
	// DefaultWindowDelta is the number of pages shown on each side of the current page.
	DefaultWindowDelta = 2
	// compactThreshold is the largest page count rendered without ellipses.
	compactThreshold = 7
)

// PageSizeOptions lists the page sizes offered by list views.
var PageSizeOptions = []int{7, 20, 50}

// IsPageSizeOption reports whether size is one of PageSizeOptions.
func IsPageSizeOption(size int) bool {
	for _, opt := range PageSizeOptions {
		if opt == size {
			return true
		}
	}
	return false
}

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// PageItem is one entry of a compact page-number sequence. Ellipsis entries
// carry no page number.
type PageItem struct {
	Number   int
	Ellipsis bool
	Current  bool
}

// NewPagination computes pagination metadata. Page is clamped into
// [1, TotalPages] and TotalPages is never below 1, so an empty result still
// renders a single empty page.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page <= 0 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first item on the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Bounds returns the [start, end) slice bounds of the current page within a
// collection of n items.
func (p Pagination) Bounds(n int) (int, int) {
	start := p.Offset()
	if start > n {
		start = n
	}
	end := start + p.PerPage
	if end > n {
		end = n
	}
	return start, end
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Window returns the compact page-number sequence for the pager. All pages
// are listed when there are at most seven; otherwise the first and last page
// frame a window of delta pages on each side of the current one, with
// ellipses marking the gaps.
func (p Pagination) Window(delta int) []PageItem {
	if delta < 1 {
		delta = 1
	}
	current, total := p.Page, p.TotalPages
	if total <= compactThreshold {
		items := make([]PageItem, 0, total)
		for i := 1; i <= total; i++ {
			items = append(items, PageItem{Number: i, Current: i == current})
		}
		return items
	}

	items := []PageItem{{Number: 1, Current: current == 1}}
	if current-delta > 2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	for i := max(2, current-delta); i <= min(total-1, current+delta); i++ {
		items = append(items, PageItem{Number: i, Current: i == current})
	}
	if current+delta < total-1 {
		items = append(items, PageItem{Ellipsis: true})
	}
	items = append(items, PageItem{Number: total, Current: current == total})
	return items
}
