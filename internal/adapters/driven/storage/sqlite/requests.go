package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// requestStore implements driven.RequestStore.
type requestStore struct {
	store *Store
}

var _ driven.RequestStore = (*requestStore)(nil)

const requestColumns = `id, user_id, area, cleaning_date, city_id, district, address,
	total_cost, status, cleaner_id, payment_id, created_at`

// Add stores a request and returns the assigned ID.
func (s *requestStore) Add(ctx context.Context, r domain.Request) (int, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO requests (user_id, area, cleaning_date, cleaning_day, city_id, district, address,
			total_cost, status, cleaner_id, payment_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.UserID, r.Area.String(), formatTime(r.CleaningDate), formatDay(r.CleaningDate),
		r.CityID, r.District, r.Address, r.TotalCost.String(), string(r.Status),
		nullInt(r.CleanerID), r.PaymentID, formatTime(r.CreatedAt))
	if err != nil {
		return 0, writeErr("inserting request", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, writeErr("reading request id", err)
	}
	return int(id), nil
}

// Get retrieves a request by ID.
func (s *requestStore) Get(ctx context.Context, id int) (*domain.Request, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+requestColumns+" FROM requests WHERE id = ?", id)
	r, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// List returns requests matching the filter in insertion order.
// Present filter fields become AND-combined conditions.
func (s *requestStore) List(ctx context.Context, filter *domain.RequestFilter) ([]domain.Request, error) {
	var w where
	if filter != nil {
		w.dayRange("cleaning_day", filter.StartDate, filter.EndDate)
		if filter.CleanerID != nil {
			w.add("cleaner_id = ?", *filter.CleanerID)
		}
		if filter.ClientID != nil {
			w.add("user_id = ?", *filter.ClientID)
		}
		if filter.Status != nil {
			w.add("status = ?", string(*filter.Status))
		}
		if filter.CityID != nil {
			w.add("city_id = ?", *filter.CityID)
		}
	}
	return s.query(ctx, w)
}

// ListByUser returns the requests placed by a client.
func (s *requestStore) ListByUser(ctx context.Context, userID int) ([]domain.Request, error) {
	var w where
	w.add("user_id = ?", userID)
	return s.query(ctx, w)
}

// ListByCleaner returns the requests assigned to a cleaner.
func (s *requestStore) ListByCleaner(ctx context.Context, cleanerID int) ([]domain.Request, error) {
	var w where
	w.add("cleaner_id = ?", cleanerID)
	return s.query(ctx, w)
}

func (s *requestStore) query(ctx context.Context, w where) ([]domain.Request, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+requestColumns+" FROM requests"+w.String()+" ORDER BY id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requests: %w", err)
	}
	return requests, nil
}

// Update overwrites every field except the creation time.
func (s *requestStore) Update(ctx context.Context, r domain.Request) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE requests SET user_id = ?, area = ?, cleaning_date = ?, cleaning_day = ?, city_id = ?,
			district = ?, address = ?, total_cost = ?, status = ?, cleaner_id = ?, payment_id = ?
		WHERE id = ?
	`, r.UserID, r.Area.String(), formatTime(r.CleaningDate), formatDay(r.CleaningDate),
		r.CityID, r.District, r.Address, r.TotalCost.String(), string(r.Status),
		nullInt(r.CleanerID), r.PaymentID, r.ID)
	if err != nil {
		return false, writeErr("updating request", err)
	}
	return affected(res, "updating request")
}

// Delete removes a request and, through the foreign key, its service rows.
func (s *requestStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM requests WHERE id = ?", id)
	if err != nil {
		return false, writeErr("deleting request", err)
	}
	return affected(res, "deleting request")
}

func scanRequest(row scanner) (*domain.Request, error) {
	var r domain.Request
	var cleaningDate, created, status string
	var cleaner sql.NullInt64
	if err := row.Scan(&r.ID, &r.UserID, &r.Area, &cleaningDate, &r.CityID, &r.District, &r.Address,
		&r.TotalCost, &status, &cleaner, &r.PaymentID, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning request: %w", err)
	}

	r.Status = domain.RequestStatus(status)
	if cleaner.Valid {
		r.AssignCleaner(int(cleaner.Int64))
	}

	var err error
	if r.CleaningDate, err = parseTime(cleaningDate); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &r, nil
}
