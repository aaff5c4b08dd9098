package plans

import (
	"errors"
	"strings"

	"github.com/odyssey-erp/odyssey-console/internal/platform/memstore"
)

// Repository stores the plan catalog.
type Repository interface {
	List() []Plan
	Get(name string) (Plan, error)
	Create(p Plan) error
	Delete(name string) error
}

type memoryRepository struct {
	store *memstore.Store[string, Plan]
}

// NewMemoryRepository seeds an in-process catalog.
func NewMemoryRepository(seed []Plan) (Repository, error) {
	store, err := memstore.New(Plan.Key, seed)
	if err != nil {
		return nil, err
	}
	return &memoryRepository{store: store}, nil
}

func (r *memoryRepository) List() []Plan { return r.store.All() }

func (r *memoryRepository) Get(name string) (Plan, error) {
	p, err := r.store.Get(strings.ToLower(name))
	return p, mapErr(err)
}

func (r *memoryRepository) Create(p Plan) error {
	return mapErr(r.store.Insert(p))
}

func (r *memoryRepository) Delete(name string) error {
	return mapErr(r.store.Delete(strings.ToLower(name)))
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, memstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, memstore.ErrDuplicate):
		return ErrAlreadyExists
	default:
		return err
	}
}
