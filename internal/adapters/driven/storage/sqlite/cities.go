package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// cityStore implements driven.CityStore.
type cityStore struct {
	store *Store
}

var _ driven.CityStore = (*cityStore)(nil)

// Add stores a city and returns the assigned ID.
func (s *cityStore) Add(ctx context.Context, city domain.City) (int, error) {
	res, err := s.store.db.ExecContext(ctx, "INSERT INTO cities (name) VALUES (?)", city.Name)
	if err != nil {
		return 0, writeErr("inserting city", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, writeErr("reading city id", err)
	}
	return int(id), nil
}

// Get retrieves a city by ID.
func (s *cityStore) Get(ctx context.Context, id int) (*domain.City, error) {
	var c domain.City
	err := s.store.db.QueryRowContext(ctx, "SELECT id, name FROM cities WHERE id = ?", id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning city: %w", err)
	}
	return &c, nil
}

// List returns all cities in insertion order.
func (s *cityStore) List(ctx context.Context) ([]domain.City, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT id, name FROM cities ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying cities: %w", err)
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning city: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cities: %w", err)
	}
	return cities, nil
}

// Update renames a city.
func (s *cityStore) Update(ctx context.Context, city domain.City) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, "UPDATE cities SET name = ? WHERE id = ?", city.Name, city.ID)
	if err != nil {
		return false, writeErr("updating city", err)
	}
	return affected(res, "updating city")
}

// Delete removes a city. Fails while requests reference it.
func (s *cityStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM cities WHERE id = ?", id)
	if err != nil {
		return false, writeErr("deleting city", err)
	}
	return affected(res, "deleting city")
}
