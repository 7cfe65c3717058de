package driving

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

// UserService manages accounts, sign-in and roles.
type UserService interface {
	// Register creates a Client account.
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)

	// Bootstrap creates the first account as an Admin. It fails with
	// domain.ErrPolicyViolation once any user exists.
	Bootstrap(ctx context.Context, reg domain.Registration) (*domain.User, error)

	// Authenticate returns the user with matching credentials or
	// domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, login, password string) (*domain.User, error)

	// Get returns a user or domain.ErrNotFound.
	Get(ctx context.Context, id int) (*domain.User, error)

	// List returns users matching the filter.
	List(ctx context.Context, filter *domain.UserFilter) ([]domain.User, error)

	// ApplyRole changes the role of targetID on behalf of actor.
	ApplyRole(ctx context.Context, actor domain.Actor, targetID int, newRole string) error

	// Remove deletes an account on behalf of actor.
	Remove(ctx context.Context, actor domain.Actor, id int) error
}
