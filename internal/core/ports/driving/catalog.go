package driving

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

// CatalogService manages the orderable services.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Service, error)

	// Get returns a service or domain.ErrNotFound.
	Get(ctx context.Context, id int) (*domain.Service, error)

	Add(ctx context.Context, service domain.Service) (*domain.Service, error)

	// Remove deletes a service no request row references.
	Remove(ctx context.Context, id int) error
}
