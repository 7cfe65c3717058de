package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// userStore implements driven.UserStore.
type userStore struct {
	store *Store
}

var _ driven.UserStore = (*userStore)(nil)

const userColumns = "id, last_name, first_name, middle_name, login, password, role, created_at"

// Add stores a user and returns the assigned ID.
func (s *userStore) Add(ctx context.Context, user domain.User) (int, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO users (last_name, first_name, middle_name, login, password, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, user.LastName, user.FirstName, nullString(user.MiddleName),
		user.Login, user.Password, string(user.Role), formatTime(user.CreatedAt))
	if err != nil {
		return 0, writeErr("inserting user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, writeErr("reading user id", err)
	}
	return int(id), nil
}

// Get retrieves a user by ID.
func (s *userStore) Get(ctx context.Context, id int) (*domain.User, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanOneUser(row)
}

// GetByLogin retrieves a user by exact login.
func (s *userStore) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE login = ?", login)
	return scanOneUser(row)
}

// List returns users matching the filter in insertion order.
func (s *userStore) List(ctx context.Context, filter *domain.UserFilter) ([]domain.User, error) {
	var w where
	if filter != nil {
		if filter.Role != nil {
			w.add("role = ?", string(*filter.Role))
		}
		w.dayRange("substr(created_at, 1, 10)", filter.CreatedFrom, filter.CreatedTo)
	}

	rows, err := s.store.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users"+w.String()+" ORDER BY id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.User //nolint:prealloc // size unknown from query
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// Update overwrites a user. The creation time is never changed.
func (s *userStore) Update(ctx context.Context, user domain.User) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE users SET last_name = ?, first_name = ?, middle_name = ?, login = ?, password = ?, role = ?
		WHERE id = ?
	`, user.LastName, user.FirstName, nullString(user.MiddleName),
		user.Login, user.Password, string(user.Role), user.ID)
	if err != nil {
		return false, writeErr("updating user", err)
	}
	return affected(res, "updating user")
}

// Delete removes a user.
func (s *userStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return false, writeErr("deleting user", err)
	}
	return affected(res, "deleting user")
}

func scanOneUser(row *sql.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var middle sql.NullString
	var role, created string
	if err := row.Scan(&u.ID, &u.LastName, &u.FirstName, &middle, &u.Login, &u.Password, &role, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if middle.Valid {
		u.MiddleName = &middle.String
	}
	u.Role = domain.Role(role)

	var err error
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &u, nil
}
