// Package listview derives the filtered, paginated view of a record
// collection shown by every list page of the console.
package listview

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/odyssey-erp/odyssey-console/internal/shared"
)

// All is the sentinel category that disables the categorical filter.
const All = "All"

// DateLayout is the wire format of the date range inputs.
const DateLayout = "2006-01-02"

// ErrInvalidQuery wraps malformed list query parameters.
var ErrInvalidQuery = errors.New("invalid list query")

// Query is the filter state owned by one list view.
type Query struct {
	Search    string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// NewQuery returns the unfiltered first page.
func NewQuery(pageSize int) Query {
	if pageSize <= 0 {
		pageSize = shared.DefaultPerPage
	}
	return Query{Category: All, Page: 1, PageSize: pageSize}
}

// Filtered reports whether any predicate is active.
func (q Query) Filtered() bool {
	return strings.TrimSpace(q.Search) != "" || !isAll(q.Category) || q.StartDate != nil || q.EndDate != nil
}

// ParseQuery reads the list query parameters. Unsupported page sizes fall
// back to defaultPageSize. A malformed date leaves that bound unset and is
// reported through the returned error, which wraps ErrInvalidQuery.
func ParseQuery(values url.Values, defaultPageSize int) (Query, error) {
	q := NewQuery(defaultPageSize)
	q.Search = strings.TrimSpace(values.Get("q"))
	if c := strings.TrimSpace(values.Get("category")); c != "" {
		q.Category = c
	}
	if size, err := strconv.Atoi(values.Get("page_size")); err == nil && shared.IsPageSizeOption(size) {
		q.PageSize = size
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}

	var problems []string
	if raw := strings.TrimSpace(values.Get("start")); raw != "" {
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("start date %q must be YYYY-MM-DD", raw))
		} else {
			q.StartDate = &d
		}
	}
	if raw := strings.TrimSpace(values.Get("end")); raw != "" {
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("end date %q must be YYYY-MM-DD", raw))
		} else {
			q.EndDate = &d
		}
	}
	if len(problems) > 0 {
		return q, fmt.Errorf("%w: %s", ErrInvalidQuery, strings.Join(problems, "; "))
	}
	return q, nil
}

// Values encodes the query back into URL parameters. Defaults are omitted.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if !isAll(q.Category) {
		v.Set("category", q.Category)
	}
	if q.StartDate != nil {
		v.Set("start", q.StartDate.Format(DateLayout))
	}
	if q.EndDate != nil {
		v.Set("end", q.EndDate.Format(DateLayout))
	}
	if q.PageSize > 0 && q.PageSize != shared.DefaultPerPage {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// PageURL returns path with the query's filters and the given page.
func (q Query) PageURL(path string, page int) string {
	q.Page = page
	return withQuery(path, q.Values())
}

// StartValue formats the lower date bound for a date input.
func (q Query) StartValue() string { return formatDate(q.StartDate) }

// EndValue formats the upper date bound for a date input.
func (q Query) EndValue() string { return formatDate(q.EndDate) }

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func withQuery(path string, v url.Values) string {
	if encoded := v.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func isAll(category string) bool {
	return category == "" || strings.EqualFold(category, All)
}
