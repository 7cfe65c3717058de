package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// serviceStore implements driven.ServiceStore.
// Every method seeds an empty catalog first.
type serviceStore struct {
	store *Store
}

var _ driven.ServiceStore = (*serviceStore)(nil)

const serviceColumns = "id, name, price_per_square_meter, requires_area"

func insertService(ctx context.Context, db execer, svc domain.Service) (int, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO services (name, price_per_square_meter, requires_area) VALUES (?, ?, ?)
	`, svc.Name, svc.PricePerSquareMeter.String(), svc.RequiresArea)
	if err != nil {
		return 0, writeErr("inserting service", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, writeErr("reading service id", err)
	}
	return int(id), nil
}

// Add stores a service and returns the assigned ID.
func (s *serviceStore) Add(ctx context.Context, service domain.Service) (int, error) {
	if err := s.store.seedServices(ctx); err != nil {
		return 0, err
	}
	return insertService(ctx, s.store.db, service)
}

// Get retrieves a service by ID.
func (s *serviceStore) Get(ctx context.Context, id int) (*domain.Service, error) {
	if err := s.store.seedServices(ctx); err != nil {
		return nil, err
	}
	row := s.store.db.QueryRowContext(ctx, "SELECT "+serviceColumns+" FROM services WHERE id = ?", id)
	svc, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return svc, err
}

// List returns the catalog in insertion order.
func (s *serviceStore) List(ctx context.Context) ([]domain.Service, error) {
	if err := s.store.seedServices(ctx); err != nil {
		return nil, err
	}
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+serviceColumns+" FROM services ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating services: %w", err)
	}
	return services, nil
}

// Update overwrites a service.
func (s *serviceStore) Update(ctx context.Context, service domain.Service) (bool, error) {
	if err := s.store.seedServices(ctx); err != nil {
		return false, err
	}
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE services SET name = ?, price_per_square_meter = ?, requires_area = ? WHERE id = ?
	`, service.Name, service.PricePerSquareMeter.String(), service.RequiresArea, service.ID)
	if err != nil {
		return false, writeErr("updating service", err)
	}
	return affected(res, "updating service")
}

// Delete removes a service. Fails while request rows reference it.
func (s *serviceStore) Delete(ctx context.Context, id int) (bool, error) {
	if err := s.store.seedServices(ctx); err != nil {
		return false, err
	}
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM services WHERE id = ?", id)
	if err != nil {
		return false, writeErr("deleting service", err)
	}
	return affected(res, "deleting service")
}

func scanService(row scanner) (*domain.Service, error) {
	var svc domain.Service
	if err := row.Scan(&svc.ID, &svc.Name, &svc.PricePerSquareMeter, &svc.RequiresArea); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning service: %w", err)
	}
	return &svc, nil
}
