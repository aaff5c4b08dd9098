package forms

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/shared"
)

func TestProcessOutcomes(t *testing.T) {
	guard := shared.NewSubmissionGuard()
	token := shared.NewFormToken()
	ctx := context.Background()
	fail := true
	save := func(context.Context, Values) error {
		if fail {
			return errors.New("unavailable")
		}
		return nil
	}

	bad := validValues()
	bad["email"] = ""
	outcome, err := Process(ctx, guard, token, NewSubmission(bad), subscriptionSchema(), save)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, OutcomeInvalid, outcome)
	assert.Equal(t, http.StatusUnprocessableEntity, outcome.Status())

	outcome, _ = Process(ctx, guard, token, NewSubmission(validValues()), subscriptionSchema(), save)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, http.StatusServiceUnavailable, outcome.Status())

	fail = false
	outcome, err = Process(ctx, guard, token, NewSubmission(validValues()), subscriptionSchema(), save)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, outcome)

	sub := NewSubmission(validValues())
	outcome, err = Process(ctx, guard, token, sub, subscriptionSchema(), save)
	require.ErrorIs(t, err, shared.ErrSubmissionProcessed)
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Equal(t, http.StatusConflict, outcome.Status())
	assert.Equal(t, DuplicateNotice, sub.Notice)
}

func TestProcessRejectsConcurrentSubmission(t *testing.T) {
	guard := shared.NewSubmissionGuard()
	token := shared.NewFormToken()
	ctx := context.Background()

	var inner Outcome
	outer, err := Process(ctx, guard, token, NewSubmission(validValues()), subscriptionSchema(), func(ctx context.Context, v Values) error {
		inner, _ = Process(ctx, guard, token, NewSubmission(v), subscriptionSchema(), func(context.Context, Values) error { return nil })
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, outer)
	assert.Equal(t, OutcomeDuplicate, inner)
}
