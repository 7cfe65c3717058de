package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

func TestCityService_Add(t *testing.T) {
	stores := newStores()
	service := NewCityService(stores.Cities, stores.Requests)
	ctx := context.Background()

	city, err := service.Add(ctx, "  Metropolis ")
	require.NoError(t, err)
	assert.Equal(t, 1, city.ID)
	assert.Equal(t, "Metropolis", city.Name)

	_, err = service.Add(ctx, "METROPOLIS")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = service.Add(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cities, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, 1)
}

func TestCityService_Remove_BlockedByRequest(t *testing.T) {
	stores := newStores()
	service := NewCityService(stores.Cities, stores.Requests)
	ctx := context.Background()

	city, err := service.Add(ctx, "Metropolis")
	require.NoError(t, err)
	require.Equal(t, 1, city.ID)

	// Move the id counter so the request lands on id 10.
	for i := 0; i < 9; i++ {
		id, err := stores.Requests.Add(ctx, domain.Request{CityID: 99})
		require.NoError(t, err)
		_, err = stores.Requests.Delete(ctx, id)
		require.NoError(t, err)
	}
	reqID, err := stores.Requests.Add(ctx, domain.Request{CityID: city.ID, Status: domain.StatusNew})
	require.NoError(t, err)
	require.Equal(t, 10, reqID)

	err = service.Remove(ctx, city.ID)
	require.Error(t, err)

	var inUse *domain.CityInUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, 1, inUse.Requests)
	assert.Equal(t, city.ID, inUse.CityID)
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)

	cities, _ := service.List(ctx)
	assert.Len(t, cities, 1, "blocked city is kept")

	_, err = stores.Requests.Delete(ctx, reqID)
	require.NoError(t, err)
	require.NoError(t, service.Remove(ctx, city.ID))

	cities, _ = service.List(ctx)
	assert.Empty(t, cities)
}

func TestCityService_Remove_NotFound(t *testing.T) {
	stores := newStores()
	service := NewCityService(stores.Cities, stores.Requests)

	assert.ErrorIs(t, service.Remove(context.Background(), 7), domain.ErrNotFound)
}

func TestCityService_NilStore(t *testing.T) {
	service := NewCityService(nil, nil)
	_, err := service.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
