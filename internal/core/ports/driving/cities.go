package driving

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

// CityService manages the list of served cities.
type CityService interface {
	List(ctx context.Context) ([]domain.City, error)

	// Add creates a city. Names are unique ignoring case.
	Add(ctx context.Context, name string) (*domain.City, error)

	// Remove deletes a city nobody references. A referenced city yields
	// a *domain.CityInUseError.
	Remove(ctx context.Context, id int) error
}
