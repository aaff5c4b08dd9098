package tenants

import "slices"

// Repository is the read-only tenant directory.
type Repository struct {
	tenants []Tenant
}

// NewRepository wraps the fixture tenants.
func NewRepository(seed []Tenant) *Repository {
	return &Repository{tenants: slices.Clone(seed)}
}

// List returns every tenant in directory order.
func (r *Repository) List() []Tenant { return slices.Clone(r.tenants) }
