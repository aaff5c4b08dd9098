package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/odyssey-console/internal/backend"
	"github.com/odyssey-erp/odyssey-console/internal/platform/memstore"
)

// Decision is the outcome of a manual review.
type Decision string

const (
	Accept Decision = "accept"
	Reject Decision = "reject"
)

// Service reviews payments.
type Service struct {
	store   *memstore.Store[int64, Payment]
	gateway backend.Gateway
	logger  *slog.Logger
	now     func() time.Time
}

// NewService seeds the payment list.
func NewService(seed []Payment, gateway backend.Gateway, logger *slog.Logger) (*Service, error) {
	store, err := memstore.New(func(p Payment) int64 { return p.ID }, seed)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, gateway: gateway, logger: logger, now: time.Now}, nil
}

// List returns every payment.
func (s *Service) List() []Payment { return s.store.All() }

// Get returns one payment.
func (s *Service) Get(id int64) (Payment, error) {
	p, err := s.store.Get(id)
	if errors.Is(err, memstore.ErrNotFound) {
		return Payment{}, ErrNotFound
	}
	return p, err
}

// Review accepts or rejects a payment. Accepted payments become Success and
// rejected ones Failed; a review reference is recorded either way.
func (s *Service) Review(ctx context.Context, id int64, d Decision) (Payment, error) {
	current, err := s.Get(id)
	if err != nil {
		return Payment{}, err
	}
	if !current.ReviewedAt.IsZero() {
		return current, fmt.Errorf("%w: %s", ErrAlreadyReviewed, current.TransactionID)
	}
	next := StatusSuccess
	if d == Reject {
		next = StatusFailed
	}
	ref := uuid.NewString()
	if err := s.gateway.Send(ctx, backend.Call{Op: string(d), Resource: "payments", ID: strconv.FormatInt(id, 10), Payload: ref}); err != nil {
		return Payment{}, fmt.Errorf("%s payment: %w", d, err)
	}
	updated, err := s.store.Update(id, func(p Payment) (Payment, error) {
		p.Status = next
		p.ReviewedAt = s.now()
		p.ReviewRef = ref
		return p, nil
	})
	if err != nil {
		return Payment{}, fmt.Errorf("%s payment: %w", d, err)
	}
	s.logger.Info("payment reviewed", "id", id, "transaction", updated.TransactionID, "status", next, "ref", ref)
	return updated, nil
}
