package memory

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	table *Table[domain.User]
}

// NewUserStore creates a new in-memory user store.
func NewUserStore(opts ...TableOption[domain.User]) *UserStore {
	opts = append([]TableOption[domain.User]{WithClone(cloneUser)}, opts...)
	return &UserStore{
		table: NewTable("users", func(u *domain.User) *int { return &u.ID }, opts...),
	}
}

func cloneUser(u domain.User) domain.User {
	if u.MiddleName != nil {
		u.MiddleName = domain.Ptr(*u.MiddleName)
	}
	return u
}

func sameLogin(existing, u *domain.User) bool {
	return existing.Login == u.Login
}

// Add stores a user and returns the assigned ID.
func (s *UserStore) Add(_ context.Context, user domain.User) (int, error) {
	return s.table.Add(user, sameLogin)
}

// Get retrieves a user by ID.
func (s *UserStore) Get(_ context.Context, id int) (*domain.User, error) {
	return s.table.Get(id), nil
}

// GetByLogin retrieves a user by exact login.
func (s *UserStore) GetByLogin(_ context.Context, login string) (*domain.User, error) {
	return s.table.First(func(u *domain.User) bool { return u.Login == login }), nil
}

// List returns users matching the filter.
func (s *UserStore) List(_ context.Context, filter *domain.UserFilter) ([]domain.User, error) {
	return s.table.List(filter.Matches), nil
}

// Update overwrites a user, keeping its creation time.
func (s *UserStore) Update(_ context.Context, user domain.User) (bool, error) {
	return s.table.Update(user, func(dst *domain.User, src domain.User) {
		created := dst.CreatedAt
		*dst = src
		dst.CreatedAt = created
	}, sameLogin)
}

// Delete removes a user.
func (s *UserStore) Delete(_ context.Context, id int) (bool, error) {
	return s.table.Delete(id)
}
