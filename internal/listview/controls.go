package listview

import (
	"strconv"

	"github.com/odyssey-erp/odyssey-console/internal/shared"
)

// PageLink is one entry of the rendered pager.
type PageLink struct {
	Label    string
	URL      string
	Current  bool
	Ellipsis bool
}

// PageSizeLink is one option of the page-size selector.
type PageSizeLink struct {
	Size     int
	URL      string
	Selected bool
}

// Controls is the template model of a list's filter bar and pager. Empty
// navigation URLs mark disabled controls.
type Controls struct {
	Path       string
	Query      Query
	Categories []string
	PageSizes  []PageSizeLink
	Pages      []PageLink
	First      string
	Prev       string
	Next       string
	Last       string
	ClearURL   string
	From       int
	To         int
	Total      int
	Notice     string
}

// NewControls builds the filter bar and pager for res rendered at path.
func NewControls[T any](path string, schema Schema[T], res Result[T]) Controls {
	q, p := res.Query, res.Pagination
	c := Controls{
		Path:       path,
		Query:      q,
		Categories: schema.CategoryOptions(),
		ClearURL:   path,
		Total:      res.Total,
	}
	if res.Total > 0 {
		c.From = p.Offset() + 1
		c.To = p.Offset() + len(res.Items)
	}
	for _, size := range shared.PageSizeOptions {
		sized := q
		sized.PageSize = size
		c.PageSizes = append(c.PageSizes, PageSizeLink{
			Size:     size,
			URL:      sized.PageURL(path, 1),
			Selected: size == q.PageSize,
		})
	}
	for _, item := range p.Window(shared.DefaultWindowDelta) {
		if item.Ellipsis {
			c.Pages = append(c.Pages, PageLink{Label: "…", Ellipsis: true})
			continue
		}
		c.Pages = append(c.Pages, PageLink{
			Label:   strconv.Itoa(item.Number),
			URL:     q.PageURL(path, item.Number),
			Current: item.Current,
		})
	}
	if p.HasPrev() {
		c.First = q.PageURL(path, 1)
		c.Prev = q.PageURL(path, p.Page-1)
	}
	if p.HasNext() {
		c.Next = q.PageURL(path, p.Page+1)
		c.Last = q.PageURL(path, p.TotalPages)
	}
	return c
}
