package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// requestServiceStore implements driven.RequestServiceStore.
type requestServiceStore struct {
	store *Store
}

var _ driven.RequestServiceStore = (*requestServiceStore)(nil)

// Add stores a join row and returns the assigned ID.
func (s *requestServiceStore) Add(ctx context.Context, rs domain.RequestService) (int, error) {
	res, err := s.store.db.ExecContext(ctx,
		"INSERT INTO request_services (request_id, service_id) VALUES (?, ?)", rs.RequestID, rs.ServiceID)
	if err != nil {
		return 0, writeErr("inserting request service", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, writeErr("reading request service id", err)
	}
	return int(id), nil
}

// Get retrieves a join row by ID.
func (s *requestServiceStore) Get(ctx context.Context, id int) (*domain.RequestService, error) {
	var rs domain.RequestService
	err := s.store.db.QueryRowContext(ctx,
		"SELECT id, request_id, service_id FROM request_services WHERE id = ?", id,
	).Scan(&rs.ID, &rs.RequestID, &rs.ServiceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning request service: %w", err)
	}
	return &rs, nil
}

// List returns every join row in insertion order.
func (s *requestServiceStore) List(ctx context.Context) ([]domain.RequestService, error) {
	return s.query(ctx, "SELECT id, request_id, service_id FROM request_services ORDER BY id")
}

// ListByRequest returns the join rows of one request.
func (s *requestServiceStore) ListByRequest(ctx context.Context, requestID int) ([]domain.RequestService, error) {
	return s.query(ctx,
		"SELECT id, request_id, service_id FROM request_services WHERE request_id = ? ORDER BY id", requestID)
}

func (s *requestServiceStore) query(ctx context.Context, q string, args ...any) ([]domain.RequestService, error) {
	rows, err := s.store.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying request services: %w", err)
	}
	defer rows.Close()

	var out []domain.RequestService
	for rows.Next() {
		var rs domain.RequestService
		if err := rows.Scan(&rs.ID, &rs.RequestID, &rs.ServiceID); err != nil {
			return nil, fmt.Errorf("scanning request service: %w", err)
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating request services: %w", err)
	}
	return out, nil
}

// Update overwrites a join row.
func (s *requestServiceStore) Update(ctx context.Context, rs domain.RequestService) (bool, error) {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE request_services SET request_id = ?, service_id = ? WHERE id = ?", rs.RequestID, rs.ServiceID, rs.ID)
	if err != nil {
		return false, writeErr("updating request service", err)
	}
	return affected(res, "updating request service")
}

// Delete removes a join row.
func (s *requestServiceStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM request_services WHERE id = ?", id)
	if err != nil {
		return false, writeErr("deleting request service", err)
	}
	return affected(res, "deleting request service")
}

// DeleteByRequest removes every join row of one request.
func (s *requestServiceStore) DeleteByRequest(ctx context.Context, requestID int) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM request_services WHERE request_id = ?", requestID)
	if err != nil {
		return false, writeErr("deleting request services", err)
	}
	return affected(res, "deleting request services")
}
