package driven

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

// UserStore persists users.
type UserStore interface {
	// Add assigns the next id, stores the user and returns the id.
	// Returns domain.ErrAlreadyExists if the login is taken.
	Add(ctx context.Context, user domain.User) (int, error)

	// Get retrieves a user by ID. Returns nil, nil if absent.
	Get(ctx context.Context, id int) (*domain.User, error)

	// GetByLogin retrieves a user by exact, case-sensitive login.
	// Returns nil, nil if absent.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)

	// List returns users matching the filter. A nil filter matches all.
	List(ctx context.Context, filter *domain.UserFilter) ([]domain.User, error)

	// Update overwrites the mutable fields of the user with user.ID.
	// Returns false if no such user exists.
	Update(ctx context.Context, user domain.User) (bool, error)

	// Delete removes a user. Returns false if no such user exists.
	Delete(ctx context.Context, id int) (bool, error)
}

// CityStore persists cities.
type CityStore interface {
	Add(ctx context.Context, city domain.City) (int, error)
	Get(ctx context.Context, id int) (*domain.City, error)
	List(ctx context.Context) ([]domain.City, error)
	Update(ctx context.Context, city domain.City) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ServiceStore persists the service catalog.
// An empty catalog is seeded with domain.DefaultServices on first access.
type ServiceStore interface {
	Add(ctx context.Context, service domain.Service) (int, error)
	Get(ctx context.Context, id int) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	Update(ctx context.Context, service domain.Service) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// RequestStore persists cleaning requests.
type RequestStore interface {
	Add(ctx context.Context, request domain.Request) (int, error)
	Get(ctx context.Context, id int) (*domain.Request, error)

	// List returns requests matching the filter. A nil filter matches all.
	List(ctx context.Context, filter *domain.RequestFilter) ([]domain.Request, error)

	// ListByUser returns the requests owned by a client.
	ListByUser(ctx context.Context, userID int) ([]domain.Request, error)

	// ListByCleaner returns the requests assigned to a cleaner.
	ListByCleaner(ctx context.Context, cleanerID int) ([]domain.Request, error)

	// Update overwrites every field except ID and CreatedAt.
	Update(ctx context.Context, request domain.Request) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// RequestServiceStore persists request to service join rows.
type RequestServiceStore interface {
	Add(ctx context.Context, rs domain.RequestService) (int, error)
	Get(ctx context.Context, id int) (*domain.RequestService, error)
	List(ctx context.Context) ([]domain.RequestService, error)

	// ListByRequest returns the rows of one request.
	ListByRequest(ctx context.Context, requestID int) ([]domain.RequestService, error)

	Update(ctx context.Context, rs domain.RequestService) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)

	// DeleteByRequest removes every row of one request.
	// Returns true if at least one row was removed.
	DeleteByRequest(ctx context.Context, requestID int) (bool, error)
}

// PaymentStore persists payments.
// The store does not reject a second payment for the same request;
// that rule belongs to the request service.
type PaymentStore interface {
	// Add returns domain.ErrAlreadyExists if the transaction id is taken.
	Add(ctx context.Context, payment domain.Payment) (int, error)
	Get(ctx context.Context, id int) (*domain.Payment, error)

	// GetByRequest returns the first payment of a request, or nil, nil.
	GetByRequest(ctx context.Context, requestID int) (*domain.Payment, error)

	List(ctx context.Context, filter *domain.PaymentFilter) ([]domain.Payment, error)
	Update(ctx context.Context, payment domain.Payment) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Stores bundles the six entity stores of one backend.
type Stores struct {
	Users           UserStore
	Cities          CityStore
	Services        ServiceStore
	Requests        RequestStore
	RequestServices RequestServiceStore
	Payments        PaymentStore
}
