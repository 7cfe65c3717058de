package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

const testCard = "4532 0151 1283 0366"

var errBoom = errors.New("boom")

func newStores() driven.Stores {
	return driven.Stores{
		Users:           memory.NewUserStore(),
		Cities:          memory.NewCityStore(),
		Services:        memory.NewServiceStore(),
		Requests:        memory.NewRequestStore(),
		RequestServices: memory.NewRequestServiceStore(),
		Payments:        memory.NewPaymentStore(),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addUser(t *testing.T, stores driven.Stores, login string, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{LastName: "Test", FirstName: login, Login: login, Password: "secret", Role: role}
	id, err := stores.Users.Add(context.Background(), u)
	require.NoError(t, err)
	u.ID = id
	return u
}

func addCity(t *testing.T, stores driven.Stores, name string) domain.City {
	t.Helper()
	c := domain.City{Name: name}
	id, err := stores.Cities.Add(context.Background(), c)
	require.NoError(t, err)
	c.ID = id
	return c
}

func order(cityID int, serviceIDs ...int) domain.Order {
	return domain.Order{
		Area:         decimal.NewFromInt(40),
		CleaningDate: day(2024, 3, 15),
		CityID:       cityID,
		District:     "Centre",
		Address:      "1 Main St",
		ServiceIDs:   serviceIDs,
		CardNumber:   testCard,
	}
}

// failingRequestStore fails every List call.
type failingRequestStore struct {
	driven.RequestStore
}

func (failingRequestStore) List(context.Context, *domain.RequestFilter) ([]domain.Request, error) {
	return nil, errBoom
}

// failingUserStore fails every List call.
type failingUserStore struct {
	driven.UserStore
}

func (failingUserStore) List(context.Context, *domain.UserFilter) ([]domain.User, error) {
	return nil, errBoom
}
