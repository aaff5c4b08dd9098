package view

import (
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"formatDay": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"money":  Money,
		"number": Number,
		"upper":  strings.ToUpper,
		"lower":  strings.ToLower,
		"badge":  Badge,
		"same": func(a, b string) bool {
			return strings.EqualFold(a, b)
		},
		"field": NewField,
	}
}

// Field is the template model of one labelled form input.
type Field struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

// NewField looks up the posted value and error for name.
func NewField(name, label, typ string, values, errs map[string]string) Field {
	return Field{Name: name, Label: label, Type: typ, Value: values[name], Error: errs[name]}
}

// Money formats an amount with two decimals and thousands grouping.
func Money(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// Number formats an integer with thousands grouping.
func Number(v int) string {
	return printer.Sprintf("%d", v)
}

// Badge maps a status label to its badge style.
func Badge(status string) string {
	switch strings.ToLower(status) {
	case "active", "success", "paid", "resolved", "closed":
		return "badge-success"
	case "inactive", "pending", "in progress", "medium", "open":
		return "badge-warn"
	case "suspended", "failed", "overdue", "high", "critical":
		return "badge-danger"
	default:
		return "badge-default"
	}
}
