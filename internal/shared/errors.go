package shared

import "errors"

var (
	// ErrSubmissionInFlight occurs when a form token is already being processed.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrSubmissionProcessed occurs when a form token was already accepted.
	ErrSubmissionProcessed = errors.New("submission already processed")
	// ErrFormTokenMissing occurs when a form is posted without its token.
	ErrFormTokenMissing = errors.New("form token missing")
)
