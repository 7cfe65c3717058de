package memory

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// Ensure ServiceStore implements the interface.
var _ driven.ServiceStore = (*ServiceStore)(nil)

// ServiceStore is an in-memory implementation of driven.ServiceStore.
// The catalog is seeded with domain.DefaultServices on first access.
type ServiceStore struct {
	table *Table[domain.Service]
}

// NewServiceStore creates a new in-memory service catalog.
func NewServiceStore(opts ...TableOption[domain.Service]) *ServiceStore {
	opts = append([]TableOption[domain.Service]{WithSeed(domain.DefaultServices)}, opts...)
	return &ServiceStore{
		table: NewTable("services", func(s *domain.Service) *int { return &s.ID }, opts...),
	}
}

// Add stores a service and returns the assigned ID.
func (s *ServiceStore) Add(_ context.Context, service domain.Service) (int, error) {
	return s.table.Add(service, nil)
}

// Get retrieves a service by ID.
func (s *ServiceStore) Get(_ context.Context, id int) (*domain.Service, error) {
	return s.table.Get(id), nil
}

// List returns the catalog.
func (s *ServiceStore) List(_ context.Context) ([]domain.Service, error) {
	return s.table.List(nil), nil
}

// Update overwrites a service.
func (s *ServiceStore) Update(_ context.Context, service domain.Service) (bool, error) {
	return s.table.Update(service, nil, nil)
}

// Delete removes a service.
func (s *ServiceStore) Delete(_ context.Context, id int) (bool, error) {
	return s.table.Delete(id)
}
