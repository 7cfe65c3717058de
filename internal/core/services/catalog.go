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

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService manages orderable services.
type CatalogService struct {
	serviceStore        driven.ServiceStore
	requestServiceStore driven.RequestServiceStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(serviceStore driven.ServiceStore, requestServiceStore driven.RequestServiceStore) *CatalogService {
	return &CatalogService{
		serviceStore:        serviceStore,
		requestServiceStore: requestServiceStore,
	}
}

// List returns the catalog.
func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	if s.serviceStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.serviceStore.List(ctx)
}

// Get returns a service or domain.ErrNotFound.
func (s *CatalogService) Get(ctx context.Context, id int) (*domain.Service, error) {
	if s.serviceStore == nil {
		return nil, domain.ErrNotImplemented
	}
	svc, err := s.serviceStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("service %d: %w", id, domain.ErrNotFound)
	}
	return svc, nil
}

// Add creates a catalog entry.
func (s *CatalogService) Add(ctx context.Context, service domain.Service) (*domain.Service, error) {
	if s.serviceStore == nil {
		return nil, domain.ErrNotImplemented
	}
	service.Name = strings.TrimSpace(service.Name)
	if service.Name == "" {
		return nil, fmt.Errorf("%w: service name is required", domain.ErrInvalidInput)
	}
	if !service.PricePerSquareMeter.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than zero", domain.ErrInvalidInput)
	}

	id, err := s.serviceStore.Add(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("add service: %w", err)
	}
	service.ID = id
	logger.Debug("added service %d (%s)", id, service.Name)
	return &service, nil
}

// Remove deletes a service that no request row references.
func (s *CatalogService) Remove(ctx context.Context, id int) error {
	if s.serviceStore == nil || s.requestServiceStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	rows, err := s.requestServiceStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list request services: %w", err)
	}
	for _, rs := range rows {
		if rs.ServiceID == id {
			return domain.ErrServiceInUse
		}
	}

	if _, err := s.serviceStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	logger.Debug("removed service %d", id)
	return nil
}
