package memory

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// Ensure PaymentStore implements the interface.
var _ driven.PaymentStore = (*PaymentStore)(nil)

// PaymentStore is an in-memory implementation of driven.PaymentStore.
type PaymentStore struct {
	table *Table[domain.Payment]
}

// NewPaymentStore creates a new in-memory payment store.
func NewPaymentStore(opts ...TableOption[domain.Payment]) *PaymentStore {
	return &PaymentStore{
		table: NewTable("payments", func(p *domain.Payment) *int { return &p.ID }, opts...),
	}
}

func sameTransaction(existing, p *domain.Payment) bool {
	return p.TransactionID != "" && existing.TransactionID == p.TransactionID
}

// Add stores a payment and returns the assigned ID.
func (s *PaymentStore) Add(_ context.Context, payment domain.Payment) (int, error) {
	return s.table.Add(payment, sameTransaction)
}

// Get retrieves a payment by ID.
func (s *PaymentStore) Get(_ context.Context, id int) (*domain.Payment, error) {
	return s.table.Get(id), nil
}

// GetByRequest returns the first payment recorded for a request.
func (s *PaymentStore) GetByRequest(_ context.Context, requestID int) (*domain.Payment, error) {
	return s.table.First(func(p *domain.Payment) bool { return p.RequestID == requestID }), nil
}

// List returns payments matching the filter.
func (s *PaymentStore) List(_ context.Context, filter *domain.PaymentFilter) ([]domain.Payment, error) {
	return s.table.List(filter.Matches), nil
}

// Update overwrites a payment.
func (s *PaymentStore) Update(_ context.Context, payment domain.Payment) (bool, error) {
	return s.table.Update(payment, nil, sameTransaction)
}

// Delete removes a payment.
func (s *PaymentStore) Delete(_ context.Context, id int) (bool, error) {
	return s.table.Delete(id)
}
