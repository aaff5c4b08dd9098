// Package backend routes every console mutation through a gateway before
// local state is changed. The console ships with a stub gateway only.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrUnavailable reports a simulated backend failure.
var ErrUnavailable = errors.New("backend unavailable")

// Call describes one backend request.
type Call struct {
	Op       string
	Resource string
	ID       string
	Payload  any
}

func (c Call) String() string {
	if c.ID == "" {
		return c.Op + " " + c.Resource
	}
	return fmt.Sprintf("%s %s/%s", c.Op, c.Resource, c.ID)
}

// Gateway sends calls to the backend.
type Gateway interface {
	Send(ctx context.Context, call Call) error
}

// Stub accepts every call except every failEvery-th one.
type Stub struct {
	logger    *slog.Logger
	failEvery int

	mu    sync.Mutex
	calls []Call
}

// NewStub constructs the stub gateway. failEvery <= 0 never fails.
func NewStub(logger *slog.Logger, failEvery int) *Stub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stub{logger: logger, failEvery: failEvery}
}

// Send records the call and fails it when the failure cadence is reached.
func (s *Stub) Send(ctx context.Context, call Call) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	n := len(s.calls)
	s.mu.Unlock()

	if s.failEvery > 0 && n%s.failEvery == 0 {
		s.logger.Warn("backend call failed", "call", call.String(), "seq", n)
		return fmt.Errorf("%s: %w", call, ErrUnavailable)
	}
	s.logger.Info("backend call", "call", call.String(), "seq", n)
	return nil
}

// Calls returns a copy of every call received so far.
func (s *Stub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, call Call) error

// Send calls f.
func (f GatewayFunc) Send(ctx context.Context, call Call) error { return f(ctx, call) }

// Observe wraps g so every call result is reported to observe.
func Observe(g Gateway, observe func(op string, err error)) Gateway {
	return GatewayFunc(func(ctx context.Context, call Call) error {
		err := g.Send(ctx, call)
		observe(call.Op, err)
		return err
	})
}
