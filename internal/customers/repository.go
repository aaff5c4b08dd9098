package customers

import (
	"errors"

	"github.com/odyssey-erp/odyssey-console/internal/platform/memstore"
)

// Repository stores customer accounts.
type Repository interface {
	List() []Customer
	Get(id int64) (Customer, error)
	Create(c Customer) error
	Update(id int64, fn func(Customer) (Customer, error)) (Customer, error)
	Delete(id int64) error
}

type memoryRepository struct {
	store *memstore.Store[int64, Customer]
}

// NewMemoryRepository seeds an in-process customer directory.
func NewMemoryRepository(seed []Customer) (Repository, error) {
	store, err := memstore.New(func(c Customer) int64 { return c.ID }, seed)
	if err != nil {
		return nil, err
	}
	return &memoryRepository{store: store}, nil
}

func (r *memoryRepository) List() []Customer { return r.store.All() }

func (r *memoryRepository) Get(id int64) (Customer, error) {
	c, err := r.store.Get(id)
	return c, mapErr(err)
}

func (r *memoryRepository) Create(c Customer) error { return r.store.Insert(c) }

func (r *memoryRepository) Update(id int64, fn func(Customer) (Customer, error)) (Customer, error) {
	c, err := r.store.Update(id, fn)
	return c, mapErr(err)
}

func (r *memoryRepository) Delete(id int64) error { return mapErr(r.store.Delete(id)) }

func mapErr(err error) error {
	if errors.Is(err, memstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
