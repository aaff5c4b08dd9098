package listview

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Category is one option of a view's categorical filter.
type Category[T any] struct {
	Label string
	Match func(T) bool
}

// FieldEquals builds a category matching records whose field equals label.
func FieldEquals[T any](label string, field func(T) string) Category[T] {
	return Category[T]{
		Label: label,
		Match: func(rec T) bool { return strings.EqualFold(field(rec), label) },
	}
}

// Above builds a threshold category matching records whose value exceeds cutoff.
func Above[T any](label string, value func(T) float64, cutoff float64) Category[T] {
	return Category[T]{
		Label: label,
		Match: func(rec T) bool { return value(rec) > cutoff },
	}
}

// Schema describes how a view filters one record type.
type Schema[T any] struct {
	// Searchable returns the fields matched by free-text search.
	Searchable func(T) []string
	// Timestamp returns the value tested by the date range.
	Timestamp func(T) time.Time
	// Categories are the options of the categorical filter, excluding All.
	Categories []Category[T]
	// Order sorts the filtered records when set.
	Order func(a, b T) int
}

// CategoryOptions returns the select options, All first.
func (s Schema[T]) CategoryOptions() []string {
	opts := make([]string, 0, len(s.Categories)+1)
	opts = append(opts, All)
	for _, c := range s.Categories {
		opts = append(opts, c.Label)
	}
	return opts
}

func (s Schema[T]) category(label string) (Category[T], bool) {
	for _, c := range s.Categories {
		if strings.EqualFold(c.Label, label) {
			return c, true
		}
	}
	return Category[T]{}, false
}

// Matches reports whether rec passes every active predicate of q.
func (s Schema[T]) Matches(rec T, q Query) bool {
	if needle := strings.TrimSpace(q.Search); needle != "" && s.Searchable != nil {
		folder := cases.Fold()
		haystack := folder.String(strings.Join(s.Searchable(rec), " "))
		if !strings.Contains(haystack, folder.String(needle)) {
			return false
		}
	}
	if !isAll(q.Category) {
		c, ok := s.category(q.Category)
		if !ok || !c.Match(rec) {
			return false
		}
	}
	if (q.StartDate != nil || q.EndDate != nil) && s.Timestamp != nil {
		ts := s.Timestamp(rec)
		if q.StartDate != nil && ts.Before(StartOfDay(*q.StartDate, ts.Location())) {
			return false
		}
		if q.EndDate != nil && ts.After(EndOfDay(*q.EndDate, ts.Location())) {
			return false
		}
	}
	return true
}

// StartOfDay returns midnight of d's calendar day in loc.
func StartOfDay(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// EndOfDay returns the last instant of d's calendar day in loc.
func EndOfDay(d time.Time, loc *time.Location) time.Time {
	return StartOfDay(d, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
