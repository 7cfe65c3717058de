package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// Ensure CityService implements the interface.
var _ driving.CityService = (*CityService)(nil)

// CityService manages cities and guards their deletion.
type CityService struct {
	cityStore    driven.CityStore
	requestStore driven.RequestStore
}

// NewCityService creates a new city service.
func NewCityService(cityStore driven.CityStore, requestStore driven.RequestStore) *CityService {
	return &CityService{
		cityStore:    cityStore,
		requestStore: requestStore,
	}
}

// List returns all cities.
func (s *CityService) List(ctx context.Context) ([]domain.City, error) {
	if s.cityStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.cityStore.List(ctx)
}

// Add creates a city with a trimmed, case-insensitively unique name.
func (s *CityService) Add(ctx context.Context, name string) (*domain.City, error) {
	if s.cityStore == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: city name is required", domain.ErrInvalidInput)
	}

	cities, err := s.cityStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	for i := range cities {
		if cities[i].SameName(name) {
			return nil, fmt.Errorf("%w: city %q", domain.ErrAlreadyExists, cities[i].Name)
		}
	}

	city := domain.City{Name: name}
	if city.ID, err = s.cityStore.Add(ctx, city); err != nil {
		return nil, fmt.Errorf("add city: %w", err)
	}
	logger.Debug("added city %d (%s)", city.ID, name)
	return &city, nil
}

// Remove deletes a city unless requests still reference it.
func (s *CityService) Remove(ctx context.Context, id int) error {
	if s.cityStore == nil || s.requestStore == nil {
		return domain.ErrNotImplemented
	}

	city, err := s.cityStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if city == nil {
		return fmt.Errorf("city %d: %w", id, domain.ErrNotFound)
	}

	using, err := s.requestStore.List(ctx, &domain.RequestFilter{CityID: &id})
	if err != nil {
		return fmt.Errorf("list requests: %w", err)
	}
	if len(using) > 0 {
		return &domain.CityInUseError{CityID: id, Requests: len(using)}
	}

	if _, err := s.cityStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	logger.Debug("removed city %d (%s)", id, city.Name)
	return nil
}
