package customers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/odyssey-erp/odyssey-console/internal/backend"
	"github.com/odyssey-erp/odyssey-console/internal/forms"
)

// Service applies customer mutations. Every mutation is sent to the
// backend first and applied locally only when the call succeeds.
type Service struct {
	repo    Repository
	gateway backend.Gateway
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex
}

// NewService constructs the customer service.
func NewService(repo Repository, gateway backend.Gateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, gateway: gateway, logger: logger, now: time.Now}
}

// List returns every customer in directory order.
func (s *Service) List() []Customer { return s.repo.List() }

// Get returns one customer.
func (s *Service) Get(id int64) (Customer, error) { return s.repo.Get(id) }

// Register creates a customer from validated registration values.
func (s *Service) Register(ctx context.Context, v forms.Values) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Apply(Customer{}, v)
	c.ID = s.nextID()
	c.JoinedAt = s.now()
	if err := s.gateway.Send(ctx, backend.Call{Op: "create", Resource: "customers", ID: idString(c.ID), Payload: c}); err != nil {
		return Customer{}, fmt.Errorf("register customer: %w", err)
	}
	if err := s.repo.Create(c); err != nil {
		return Customer{}, fmt.Errorf("register customer: %w", err)
	}
	s.logger.Info("customer registered", "id", c.ID, "company", c.CompanyName, "plan", c.Plan)
	return c, nil
}

// Update replaces the editable fields of a customer.
func (s *Service) Update(ctx context.Context, id int64, v forms.Values) (Customer, error) {
	current, err := s.repo.Get(id)
	if err != nil {
		return Customer{}, err
	}
	next := Apply(current, v)
	if err := s.gateway.Send(ctx, backend.Call{Op: "update", Resource: "customers", ID: idString(id), Payload: next}); err != nil {
		return Customer{}, fmt.Errorf("update customer: %w", err)
	}
	updated, err := s.repo.Update(id, func(c Customer) (Customer, error) { return Apply(c, v), nil })
	if err != nil {
		return Customer{}, fmt.Errorf("update customer: %w", err)
	}
	s.logger.Info("customer updated", "id", id)
	return updated, nil
}

// ToggleStatus flips a customer between active and inactive.
func (s *Service) ToggleStatus(ctx context.Context, id int64) (Customer, error) {
	current, err := s.repo.Get(id)
	if err != nil {
		return Customer{}, err
	}
	next := current.Status.Toggled()
	if err := s.gateway.Send(ctx, backend.Call{Op: "status", Resource: "customers", ID: idString(id), Payload: next}); err != nil {
		return Customer{}, fmt.Errorf("change customer status: %w", err)
	}
	updated, err := s.repo.Update(id, func(c Customer) (Customer, error) {
		c.Status = next
		c.ActivityLog = append(append([]string(nil), c.ActivityLog...), "Marked as "+string(next))
		return c, nil
	})
	if err != nil {
		return Customer{}, fmt.Errorf("change customer status: %w", err)
	}
	s.logger.Info("customer status changed", "id", id, "status", next)
	return updated, nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(id); err != nil {
		return err
	}
	if err := s.gateway.Send(ctx, backend.Call{Op: "delete", Resource: "customers", ID: idString(id)}); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	s.logger.Info("customer deleted", "id", id)
	return nil
}

// ResetPassword asks the backend to send a reset link to the owner.
func (s *Service) ResetPassword(ctx context.Context, id int64) error {
	c, err := s.repo.Get(id)
	if err != nil {
		return err
	}
	if err := s.gateway.Send(ctx, backend.Call{Op: "reset-password", Resource: "customers", ID: idString(id), Payload: c.Email}); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *Service) nextID() int64 {
	var maxID int64
	for _, c := range s.repo.List() {
		maxID = max(maxID, c.ID)
	}
	return maxID + 1
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
