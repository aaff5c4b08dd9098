package listview

import (
	"slices"

	"github.com/odyssey-erp/odyssey-console/internal/shared"
)

// Result is one rendered page of a filtered collection.
type Result[T any] struct {
	Items      []T
	Total      int
	Pagination shared.Pagination
	Query      Query
}

// Empty reports whether no record matched the query.
func (r Result[T]) Empty() bool { return r.Total == 0 }

// Filter returns the records passing every active predicate of q, in source
// order unless the schema defines an ordering.
func (s Schema[T]) Filter(records []T, q Query) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if s.Matches(rec, q) {
			out = append(out, rec)
		}
	}
	if s.Order != nil {
		slices.SortStableFunc(out, s.Order)
	}
	return out
}

// Run filters records and slices out the requested page. The page is clamped
// into the valid range so a stale page number never shows an empty page while
// matches exist.
func (s Schema[T]) Run(records []T, q Query) Result[T] {
	filtered := s.Filter(records, q)
	p := shared.NewPagination(q.Page, q.PageSize, len(filtered))
	start, end := p.Bounds(len(filtered))
	q.Page = p.Page
	q.PageSize = p.PerPage
	return Result[T]{
		Items:      filtered[start:end],
		Total:      len(filtered),
		Pagination: p,
		Query:      q,
	}
}
