package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	Flash       *shared.FlashMessage
	CurrentPath string
	Nav         []NavItem
	Data        any
}

// NavItem is one sidebar entry.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

var navigation = []NavItem{
	{Label: "Dashboard", Path: "/"},
	{Label: "Customers", Path: "/customers"},
	{Label: "Subscriptions", Path: "/plans"},
	{Label: "Payments", Path: "/payments"},
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(Funcs()).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// Page renders a full page with the pending flash notice and navigation.
// The page is buffered so a template error never leaves a half-written
// response behind.
func (e *Engine) Page(w http.ResponseWriter, r *http.Request, name, title string, data any, status int) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	td := TemplateData{
		Title:       title,
		Flash:       shared.PopFlash(w, r),
		CurrentPath: r.URL.Path,
		Nav:         Navigation(r.URL.Path),
		Data:        data,
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, td); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Navigation returns the sidebar with the section owning path marked active.
func Navigation(path string) []NavItem {
	items := make([]NavItem, len(navigation))
	copy(items, navigation)
	for i := range items {
		p := items[i].Path
		if p == "/" {
			items[i].Active = path == "/" || strings.HasPrefix(path, "/dashboard")
			continue
		}
		items[i].Active = path == p || strings.HasPrefix(path, p+"/")
	}
	return items
}
