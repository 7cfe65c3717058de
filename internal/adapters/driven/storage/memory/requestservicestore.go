package memory

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// Ensure RequestServiceStore implements the interface.
var _ driven.RequestServiceStore = (*RequestServiceStore)(nil)

// RequestServiceStore is an in-memory implementation of driven.RequestServiceStore.
type RequestServiceStore struct {
	table *Table[domain.RequestService]
}

// NewRequestServiceStore creates a new in-memory join store.
func NewRequestServiceStore(opts ...TableOption[domain.RequestService]) *RequestServiceStore {
	return &RequestServiceStore{
		table: NewTable("request services", func(rs *domain.RequestService) *int { return &rs.ID }, opts...),
	}
}

// Add stores a join row and returns the assigned ID.
func (s *RequestServiceStore) Add(_ context.Context, rs domain.RequestService) (int, error) {
	return s.table.Add(rs, nil)
}

// Get retrieves a join row by ID.
func (s *RequestServiceStore) Get(_ context.Context, id int) (*domain.RequestService, error) {
	return s.table.Get(id), nil
}

// List returns every join row.
func (s *RequestServiceStore) List(_ context.Context) ([]domain.RequestService, error) {
	return s.table.List(nil), nil
}

// ListByRequest returns the join rows of one request.
func (s *RequestServiceStore) ListByRequest(_ context.Context, requestID int) ([]domain.RequestService, error) {
	return s.table.List(forRequest(requestID)), nil
}

// Update overwrites a join row.
func (s *RequestServiceStore) Update(_ context.Context, rs domain.RequestService) (bool, error) {
	return s.table.Update(rs, nil, nil)
}

// Delete removes a join row.
func (s *RequestServiceStore) Delete(_ context.Context, id int) (bool, error) {
	return s.table.Delete(id)
}

// DeleteByRequest removes every join row of one request.
func (s *RequestServiceStore) DeleteByRequest(_ context.Context, requestID int) (bool, error) {
	n, err := s.table.DeleteWhere(forRequest(requestID))
	return n > 0, err
}

func forRequest(requestID int) func(*domain.RequestService) bool {
	return func(rs *domain.RequestService) bool { return rs.RequestID == requestID }
}
