package listview

import "time"

// ActionKind enumerates the interactions a list view reacts to.
type ActionKind int

const (
	SetSearch ActionKind = iota + 1
	SetCategory
	SetStartDate
	SetEndDate
	ClearFilters
	SetPage
	SetPageSize
	FirstPage
	PrevPage
	NextPage
	LastPage
)

// Action is one interaction applied to a State.
type Action struct {
	Kind ActionKind
	Text string
	Date *time.Time
	N    int
}

// State is the filter state of a view together with the match count of its
// last derivation, which bounds page moves.
type State struct {
	Query Query
	Total int
}

func (s State) totalPages() int {
	size := s.Query.PageSize
	if size <= 0 {
		return 1
	}
	pages := (s.Total + size - 1) / size
	return max(pages, 1)
}

// Reduce returns the state after a. Every filter change returns to page 1 so
// the page index never points past a shorter filtered set; page moves are
// clamped against the known total.
func Reduce(s State, a Action) State {
	q := s.Query
	switch a.Kind {
	case SetSearch:
		q.Search = a.Text
		q.Page = 1
	case SetCategory:
		q.Category = a.Text
		if q.Category == "" {
			q.Category = All
		}
		q.Page = 1
	case SetStartDate:
		q.StartDate = a.Date
		q.Page = 1
	case SetEndDate:
		q.EndDate = a.Date
		q.Page = 1
	case ClearFilters:
		q = NewQuery(q.PageSize)
	case SetPageSize:
		if a.N > 0 {
			q.PageSize = a.N
		}
		q.Page = 1
	case SetPage:
		q.Page = a.N
	case FirstPage:
		q.Page = 1
	case PrevPage:
		q.Page--
	case NextPage:
		q.Page++
	case LastPage:
		q.Page = s.totalPages()
	}
	switch a.Kind {
	case SetPage, PrevPage, NextPage:
		q.Page = min(max(q.Page, 1), s.totalPages())
	}
	s.Query = q
	return s
}

// View pairs a schema and a record collection with the current state and
// its derived page. Views are values: Dispatch returns a new view.
type View[T any] struct {
	schema  Schema[T]
	records []T
	state   State
	result  Result[T]
}

// NewView derives the initial page of records under q.
func NewView[T any](schema Schema[T], records []T, q Query) View[T] {
	v := View[T]{schema: schema, records: records, state: State{Query: q}}
	return v.derive()
}

// Dispatch applies a and returns the recomputed view.
func (v View[T]) Dispatch(a Action) View[T] {
	v.state = Reduce(v.state, a)
	return v.derive()
}

// WithRecords returns the view recomputed over a new collection.
func (v View[T]) WithRecords(records []T) View[T] {
	v.records = records
	return v.derive()
}

// Result returns the current page.
func (v View[T]) Result() Result[T] { return v.result }

// State returns the current filter state.
func (v View[T]) State() State { return v.state }

func (v View[T]) derive() View[T] {
	v.result = v.schema.Run(v.records, v.state.Query)
	v.state.Query = v.result.Query
	v.state.Total = v.result.Total
	return v
}
