package driving

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

// RequestService runs the request lifecycle.
type RequestService interface {
	// Place creates a New request for the actor with its service rows and
	// a successful payment.
	Place(ctx context.Context, actor domain.Actor, order domain.Order) (*domain.Request, error)

	// Get returns a request or domain.ErrNotFound.
	Get(ctx context.Context, id int) (*domain.Request, error)

	// Details resolves the client, cleaner, city, services and payment.
	Details(ctx context.Context, id int) (*domain.RequestDetails, error)

	// List returns requests matching the filter.
	List(ctx context.Context, filter *domain.RequestFilter) ([]domain.Request, error)

	// Visible narrows the filter to what the actor may see: clients their
	// own requests, cleaners their assignments, admins everything.
	Visible(ctx context.Context, actor domain.Actor, filter *domain.RequestFilter) ([]domain.Request, error)

	// Available lists New requests without a cleaner.
	Available(ctx context.Context) ([]domain.Request, error)

	// Transition moves a request to another status.
	Transition(ctx context.Context, actor domain.Actor, requestID int, to domain.RequestStatus) (*domain.Request, error)

	Take(ctx context.Context, actor domain.Actor, requestID int) (*domain.Request, error)
	Complete(ctx context.Context, actor domain.Actor, requestID int) (*domain.Request, error)
	Cancel(ctx context.Context, actor domain.Actor, requestID int) (*domain.Request, error)

	// AssignCleaner sets or clears (nil) the cleaner of a New or
	// InProgress request. Admins only.
	AssignCleaner(ctx context.Context, actor domain.Actor, requestID int, cleanerID *int) (*domain.Request, error)

	// RecordPayment adds the payment of a request that has none.
	RecordPayment(ctx context.Context, requestID int, card, transactionID string) (*domain.Payment, error)

	// SetServices replaces the ordered services and recomputes the cost.
	SetServices(ctx context.Context, requestID int, serviceIDs []int) (*domain.Request, error)

	// Remove deletes a request, its service rows, and cancels its payment.
	Remove(ctx context.Context, id int) error
}
