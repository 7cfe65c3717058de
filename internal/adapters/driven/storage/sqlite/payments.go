package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// paymentStore implements driven.PaymentStore.
type paymentStore struct {
	store *Store
}

var _ driven.PaymentStore = (*paymentStore)(nil)

const paymentColumns = "id, request_id, card_number_masked, payment_date, amount, status, transaction_id"

// transactionID stores an empty transaction id as NULL so the unique
// index only constrains real ids.
func transactionID(p domain.Payment) sql.NullString {
	return sql.NullString{String: p.TransactionID, Valid: p.TransactionID != ""}
}

// Add stores a payment and returns the assigned ID.
func (s *paymentStore) Add(ctx context.Context, p domain.Payment) (int, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO payments (request_id, card_number_masked, payment_date, payment_day, amount, status, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.RequestID, p.CardNumberMasked, formatTime(p.PaymentDate), formatDay(p.PaymentDate),
		p.Amount.String(), string(p.Status), transactionID(p))
	if err != nil {
		return 0, writeErr("inserting payment", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, writeErr("reading payment id", err)
	}
	return int(id), nil
}

// Get retrieves a payment by ID.
func (s *paymentStore) Get(ctx context.Context, id int) (*domain.Payment, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payments WHERE id = ?", id)
	return scanOnePayment(row)
}

// GetByRequest returns the first payment recorded for a request.
func (s *paymentStore) GetByRequest(ctx context.Context, requestID int) (*domain.Payment, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE request_id = ? ORDER BY id LIMIT 1", requestID)
	return scanOnePayment(row)
}

// List returns payments matching the filter in insertion order.
func (s *paymentStore) List(ctx context.Context, filter *domain.PaymentFilter) ([]domain.Payment, error) {
	var w where
	if filter != nil {
		w.dayRange("payment_day", filter.StartDate, filter.EndDate)
		if filter.Status != nil {
			w.add("status = ?", string(*filter.Status))
		}
		if filter.RequestID != nil {
			w.add("request_id = ?", *filter.RequestID)
		}
	}

	rows, err := s.store.db.QueryContext(ctx, "SELECT "+paymentColumns+" FROM payments"+w.String()+" ORDER BY id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}
	return payments, nil
}

// Update overwrites a payment.
func (s *paymentStore) Update(ctx context.Context, p domain.Payment) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE payments SET request_id = ?, card_number_masked = ?, payment_date = ?, payment_day = ?,
			amount = ?, status = ?, transaction_id = ?
		WHERE id = ?
	`, p.RequestID, p.CardNumberMasked, formatTime(p.PaymentDate), formatDay(p.PaymentDate),
		p.Amount.String(), string(p.Status), transactionID(p), p.ID)
	if err != nil {
		return false, writeErr("updating payment", err)
	}
	return affected(res, "updating payment")
}

// Delete removes a payment.
func (s *paymentStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return false, writeErr("deleting payment", err)
	}
	return affected(res, "deleting payment")
}

func scanOnePayment(row *sql.Row) (*domain.Payment, error) {
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func scanPayment(row scanner) (*domain.Payment, error) {
	var p domain.Payment
	var date, status string
	var tx sql.NullString
	if err := row.Scan(&p.ID, &p.RequestID, &p.CardNumberMasked, &date, &p.Amount, &status, &tx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning payment: %w", err)
	}
	p.Status = domain.PaymentStatus(status)
	p.TransactionID = tx.String

	var err error
	if p.PaymentDate, err = parseTime(date); err != nil {
		return nil, err
	}
	return &p, nil
}
