// Package forms evaluates declarative validation schemas against posted form
// values and drives the editing/submitting lifecycle of a console form.
package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of date inputs.
const DateLayout = "2006-01-02"

var validate = validator.New()

// Values holds trimmed posted form values keyed by field name.
type Values map[string]string

// Get returns the trimmed value of field.
func (v Values) Get(field string) string { return strings.TrimSpace(v[field]) }

// Date parses field as a YYYY-MM-DD date.
func (v Values) Date(field string) (time.Time, bool) {
	raw := v.Get(field)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, raw)
	return t, err == nil
}

// Errors maps a field to the first failing rule's message.
type Errors map[string]string

// Any reports whether at least one field failed.
func (e Errors) Any() bool { return len(e) > 0 }

// Check is a predicate over the whole form, so rules can compare fields.
type Check func(Values) bool

// Rule is one validation entry. Rules are evaluated in declaration order and
// the first failing rule of a field supplies its message.
type Rule struct {
	Field   string
	Step    int
	Check   Check
	Message string
}

// Required fails when field is blank.
func Required(field string) Check {
	return func(v Values) bool { return v.Get(field) != "" }
}

// Length bounds the rune count of field. Empty input passes.
func Length(field string, minLen, maxLen int) Check {
	return func(v Values) bool {
		s := v.Get(field)
		if s == "" {
			return true
		}
		n := utf8.RuneCountInString(s)
		return n >= minLen && n <= maxLen
	}
}

// Pattern requires field to match re. Empty input passes.
func Pattern(field string, re *regexp.Regexp) Check {
	return func(v Values) bool {
		s := v.Get(field)
		return s == "" || re.MatchString(s)
	}
}

// Tag validates field with a validator tag such as "email". Empty input
// passes.
func Tag(field, tag string) Check {
	return func(v Values) bool {
		s := v.Get(field)
		return s == "" || validate.Var(s, tag) == nil
	}
}

// OneOf requires field to equal one of options, ignoring case. Empty input
// passes.
func OneOf(field string, options ...string) Check {
	return func(v Values) bool {
		s := v.Get(field)
		if s == "" {
			return true
		}
		for _, opt := range options {
			if strings.EqualFold(s, opt) {
				return true
			}
		}
		return false
	}
}

// Number requires field to parse as a number strictly greater than floor
// when exclusive is set, or at least floor otherwise. Empty input passes.
func Number(field string, floor float64, exclusive bool) Check {
	return func(v Values) bool {
		s := v.Get(field)
		if s == "" {
			return true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		if exclusive {
			return n > floor
		}
		return n >= floor
	}
}

// Integer requires field to be a whole number of at least floor. Empty input
// passes.
func Integer(field string, floor int) Check {
	return func(v Values) bool {
		s := v.Get(field)
		if s == "" {
			return true
		}
		n, err := strconv.Atoi(s)
		return err == nil && n >= floor
	}
}

// IsDate requires field to be a YYYY-MM-DD date. Empty input passes.
func IsDate(field string) Check {
	return func(v Values) bool {
		if v.Get(field) == "" {
			return true
		}
		_, ok := v.Date(field)
		return ok
	}
}

// DateNotBefore requires the later date to be on or after the earlier one.
// The check passes while either date is missing or malformed.
func DateNotBefore(later, earlier string) Check {
	return func(v Values) bool {
		end, ok1 := v.Date(later)
		start, ok2 := v.Date(earlier)
		if !ok1 || !ok2 {
			return true
		}
		return !end.Before(start)
	}
}

// MinSpanDays requires at least days calendar days between start and end.
// The check passes while either date is missing or malformed.
func MinSpanDays(start, end string, days int) Check {
	return func(v Values) bool {
		s, ok1 := v.Date(start)
		e, ok2 := v.Date(end)
		if !ok1 || !ok2 {
			return true
		}
		return !e.Before(s.AddDate(0, 0, days))
	}
}

// When applies check only while cond holds.
func When(cond func(Values) bool, check Check) Check {
	return func(v Values) bool { return !cond(v) || check(v) }
}
