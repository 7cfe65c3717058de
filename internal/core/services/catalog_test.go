package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

func TestCatalogService_ListSeedsDefaults(t *testing.T) {
	stores := newStores()
	service := NewCatalogService(stores.Services, stores.RequestServices)

	services, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, services, len(domain.DefaultServices()))
}

func TestCatalogService_Add(t *testing.T) {
	stores := newStores()
	service := NewCatalogService(stores.Services, stores.RequestServices)
	ctx := context.Background()

	added, err := service.Add(ctx, domain.Service{Name: " Ironing ", PricePerSquareMeter: decimal.NewFromInt(30)})
	require.NoError(t, err)
	assert.Equal(t, "Ironing", added.Name)

	got, err := service.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(got.PricePerSquareMeter))

	_, err = service.Add(ctx, domain.Service{Name: "Free", PricePerSquareMeter: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = service.Add(ctx, domain.Service{PricePerSquareMeter: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogService_Remove(t *testing.T) {
	stores := newStores()
	service := NewCatalogService(stores.Services, stores.RequestServices)
	ctx := context.Background()

	services, err := service.List(ctx)
	require.NoError(t, err)
	used, unused := services[0], services[1]

	_, err = stores.RequestServices.Add(ctx, domain.RequestService{RequestID: 1, ServiceID: used.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, service.Remove(ctx, used.ID), domain.ErrServiceInUse)
	assert.ErrorIs(t, service.Remove(ctx, 99), domain.ErrNotFound)

	require.NoError(t, service.Remove(ctx, unused.ID))
	_, err = service.Get(ctx, unused.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
