package forms

import (
	"context"
	"errors"
	"fmt"
)

// Phase is a step of the submission lifecycle.
type Phase int

const (
	Editing Phase = iota
	Validating
	Submitting
	Succeeded
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrInvalid is returned by Submit when validation blocked the save.
var ErrInvalid = errors.New("form has validation errors")

// SaveFunc persists validated values.
type SaveFunc func(ctx context.Context, v Values) error

// Submission is the state of one form between renders. A failed save always
// lands back in Editing with the posted values intact.
type Submission struct {
	Phase  Phase
	Values Values
	Errors Errors
	Notice string
}

// NewSubmission starts editing with values.
func NewSubmission(v Values) *Submission {
	if v == nil {
		v = Values{}
	}
	return &Submission{Phase: Editing, Values: v, Errors: Errors{}}
}

// Submit validates the values and calls save only when every rule passes.
// It returns ErrInvalid for validation failures and the wrapped save error
// otherwise.
func (s *Submission) Submit(ctx context.Context, schema Schema, save SaveFunc) error {
	s.Phase = Validating
	s.Notice = ""
	s.Errors = schema.Validate(s.Values)
	if s.Errors.Any() {
		s.Phase = Editing
		return ErrInvalid
	}

	s.Phase = Submitting
	if err := save(ctx, s.Values); err != nil {
		s.Phase = Editing
		s.Notice = "The submission could not be completed. Please try again."
		return fmt.Errorf("submit form: %w", err)
	}
	s.Phase = Succeeded
	return nil
}
