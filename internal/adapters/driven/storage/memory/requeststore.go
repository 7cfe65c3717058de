package memory

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// Ensure RequestStore implements the interface.
var _ driven.RequestStore = (*RequestStore)(nil)

// RequestStore is an in-memory implementation of driven.RequestStore.
type RequestStore struct {
	table *Table[domain.Request]
}

// NewRequestStore creates a new in-memory request store.
func NewRequestStore(opts ...TableOption[domain.Request]) *RequestStore {
	opts = append([]TableOption[domain.Request]{WithClone(cloneRequest)}, opts...)
	return &RequestStore{
		table: NewTable("requests", func(r *domain.Request) *int { return &r.ID }, opts...),
	}
}

func cloneRequest(r domain.Request) domain.Request {
	if r.CleanerID != nil {
		r.CleanerID = domain.Ptr(*r.CleanerID)
	}
	return r
}

// Add stores a request and returns the assigned ID.
func (s *RequestStore) Add(_ context.Context, request domain.Request) (int, error) {
	return s.table.Add(request, nil)
}

// Get retrieves a request by ID.
func (s *RequestStore) Get(_ context.Context, id int) (*domain.Request, error) {
	return s.table.Get(id), nil
}

// List returns requests matching the filter.
func (s *RequestStore) List(_ context.Context, filter *domain.RequestFilter) ([]domain.Request, error) {
	return s.table.List(filter.Matches), nil
}

// ListByUser returns the requests placed by a client.
func (s *RequestStore) ListByUser(_ context.Context, userID int) ([]domain.Request, error) {
	return s.table.List(func(r *domain.Request) bool { return r.UserID == userID }), nil
}

// ListByCleaner returns the requests assigned to a cleaner.
func (s *RequestStore) ListByCleaner(_ context.Context, cleanerID int) ([]domain.Request, error) {
	return s.table.List(func(r *domain.Request) bool {
		return r.CleanerID != nil && *r.CleanerID == cleanerID
	}), nil
}

// Update overwrites a request, keeping its creation time.
func (s *RequestStore) Update(_ context.Context, request domain.Request) (bool, error) {
	return s.table.Update(request, func(dst *domain.Request, src domain.Request) {
		created := dst.CreatedAt
		*dst = src
		dst.CreatedAt = created
	}, nil)
}

// Delete removes a request.
func (s *RequestStore) Delete(_ context.Context, id int) (bool, error) {
	return s.table.Delete(id)
}
