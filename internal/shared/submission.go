package shared

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// FormTokenField is the hidden form field carrying the submission token.
const FormTokenField = "form_token"

// NewFormToken issues a token for a freshly rendered form.
func NewFormToken() string {
	return uuid.NewString()
}

// SubmissionGuard tracks form tokens so a form is processed at most once and
// never twice concurrently. Tokens whose submission failed are released so
// the same form can be resubmitted.
type SubmissionGuard struct {
	mu        sync.Mutex
	inFlight  map[string]struct{}
	processed map[string]time.Time
	now       func() time.Time
}

// NewSubmissionGuard constructs an empty guard.
func NewSubmissionGuard() *SubmissionGuard {
	return &SubmissionGuard{
		inFlight:  make(map[string]struct{}),
		processed: make(map[string]time.Time),
		now:       time.Now,
	}
}

// Begin claims the token for processing.
func (g *SubmissionGuard) Begin(token string) error {
	if token == "" {
		return ErrFormTokenMissing
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.processed[token]; ok {
		return ErrSubmissionProcessed
	}
	if _, ok := g.inFlight[token]; ok {
		return ErrSubmissionInFlight
	}
	g.inFlight[token] = struct{}{}
	return nil
}

// Complete marks the token as processed.
func (g *SubmissionGuard) Complete(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, token)
	g.processed[token] = g.now()
}

// Release frees the token after a failed submission.
func (g *SubmissionGuard) Release(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, token)
}

// InFlight reports whether the token is currently being processed.
func (g *SubmissionGuard) InFlight(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.inFlight[token]
	return ok
}

// Cleanup forgets processed tokens older than the retention window.
func (g *SubmissionGuard) Cleanup(olderThan time.Duration) int {
	cutoff := g.now().Add(-olderThan)
	g.mu.Lock()
	defer g.mu.Unlock()
	removed := 0
	for token, at := range g.processed {
		if at.Before(cutoff) {
			delete(g.processed, token)
			removed++
		}
	}
	return removed
}
