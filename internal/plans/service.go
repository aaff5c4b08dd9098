package plans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/odyssey-erp/odyssey-console/internal/backend"
)

// Service manages the plan catalog.
type Service struct {
	repo    Repository
	gateway backend.Gateway
	logger  *slog.Logger
}

// NewService constructs the catalog service.
func NewService(repo Repository, gateway backend.Gateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, gateway: gateway, logger: logger}
}

// List returns the catalog in display order.
func (s *Service) List() []Plan { return s.repo.List() }

// Get returns one plan by tier name.
func (s *Service) Get(name string) (Plan, error) { return s.repo.Get(name) }

// Exists reports whether the tier is already in the catalog.
func (s *Service) Exists(name string) bool {
	_, err := s.repo.Get(name)
	return err == nil
}

// Create sends the plan to the backend and adds it to the catalog.
func (s *Service) Create(ctx context.Context, p Plan) error {
	if s.Exists(p.Name) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, p.Name)
	}
	if err := s.gateway.Send(ctx, backend.Call{Op: "create", Resource: "plans", ID: p.Key(), Payload: p}); err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	if err := s.repo.Create(p); err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	s.logger.Info("plan created", "plan", p.Name, "billing_type", p.BillingType)
	return nil
}

// Delete removes a plan from the catalog.
func (s *Service) Delete(ctx context.Context, name string) error {
	p, err := s.repo.Get(name)
	if err != nil {
		return err
	}
	if err := s.gateway.Send(ctx, backend.Call{Op: "delete", Resource: "plans", ID: p.Key()}); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if err := s.repo.Delete(name); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete plan: %w", err)
	}
	s.logger.Info("plan deleted", "plan", p.Name)
	return nil
}
