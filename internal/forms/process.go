package forms

import (
	"context"
	"errors"
	"net/http"
)

// Outcome classifies a processed submission.
type Outcome string

const (
	OutcomeInvalid   Outcome = "invalid"
	OutcomeFailed    Outcome = "failed"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeSucceeded Outcome = "succeeded"
)

// Status is the HTTP status a handler answers a re-rendered form with.
func (o Outcome) Status() int {
	switch o {
	case OutcomeInvalid:
		return http.StatusUnprocessableEntity
	case OutcomeFailed:
		return http.StatusServiceUnavailable
	case OutcomeDuplicate:
		return http.StatusConflict
	default:
		return http.StatusSeeOther
	}
}

// Guard admits one submission per form token at a time.
type Guard interface {
	Begin(token string) error
	Complete(token string)
	Release(token string)
}

// DuplicateNotice is shown when a form token was rejected by the guard.
const DuplicateNotice = "This form was already submitted."

// Process runs sub through the guard. The token stays claimed only after a
// successful save; invalid input and failed saves release it so the same
// rendered form can be corrected and resubmitted.
func Process(ctx context.Context, guard Guard, token string, sub *Submission, schema Schema, save SaveFunc) (Outcome, error) {
	if err := guard.Begin(token); err != nil {
		sub.Phase = Editing
		sub.Notice = DuplicateNotice
		return OutcomeDuplicate, err
	}
	err := sub.Submit(ctx, schema, save)
	switch {
	case err == nil:
		guard.Complete(token)
		return OutcomeSucceeded, nil
	case errors.Is(err, ErrInvalid):
		guard.Release(token)
		return OutcomeInvalid, err
	default:
		guard.Release(token)
		return OutcomeFailed, err
	}
}
