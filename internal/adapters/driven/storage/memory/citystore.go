package memory

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// Ensure CityStore implements the interface.
var _ driven.CityStore = (*CityStore)(nil)

// CityStore is an in-memory implementation of driven.CityStore.
type CityStore struct {
	table *Table[domain.City]
}

// NewCityStore creates a new in-memory city store.
func NewCityStore(opts ...TableOption[domain.City]) *CityStore {
	return &CityStore{
		table: NewTable("cities", func(c *domain.City) *int { return &c.ID }, opts...),
	}
}

// Add stores a city and returns the assigned ID.
func (s *CityStore) Add(_ context.Context, city domain.City) (int, error) {
	return s.table.Add(city, nil)
}

// Get retrieves a city by ID.
func (s *CityStore) Get(_ context.Context, id int) (*domain.City, error) {
	return s.table.Get(id), nil
}

// List returns all cities.
func (s *CityStore) List(_ context.Context) ([]domain.City, error) {
	return s.table.List(nil), nil
}

// Update overwrites a city.
func (s *CityStore) Update(_ context.Context, city domain.City) (bool, error) {
	return s.table.Update(city, nil, nil)
}

// Delete removes a city.
func (s *CityStore) Delete(_ context.Context, id int) (bool, error) {
	return s.table.Delete(id)
}
