package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

func TestUserStore_CRUD(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	id, err := store.Add(ctx, domain.User{Login: "anna", FirstName: "Anna", Role: domain.RoleClient, CreatedAt: created})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "anna", got.Login)

	byLogin, err := store.GetByLogin(ctx, "anna")
	require.NoError(t, err)
	require.NotNil(t, byLogin)
	assert.Equal(t, id, byLogin.ID)

	ok, err := store.Update(ctx, domain.User{ID: id, Login: "anna", Role: domain.RoleCleaner})
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ = store.Get(ctx, id)
	assert.Equal(t, domain.RoleCleaner, got.Role)
	assert.Equal(t, created, got.CreatedAt, "creation time is immutable")

	ok, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserStore_GetMisses(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.GetByLogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := store.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserStore_LoginIsUniqueAndCaseSensitive(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	_, err := store.Add(ctx, domain.User{Login: "anna"})
	require.NoError(t, err)

	_, err = store.Add(ctx, domain.User{Login: "anna"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = store.Add(ctx, domain.User{Login: "Anna"})
	require.NoError(t, err)

	got, _ := store.GetByLogin(ctx, "ANNA")
	assert.Nil(t, got)
}

func TestUserStore_ListFilter(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()
	_, _ = store.Add(ctx, domain.User{Login: "a", Role: domain.RoleAdmin})
	_, _ = store.Add(ctx, domain.User{Login: "c", Role: domain.RoleCleaner})
	_, _ = store.Add(ctx, domain.User{Login: "d", Role: domain.RoleCleaner})

	all, err := store.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cleaners, err := store.List(ctx, &domain.UserFilter{Role: domain.Ptr(domain.RoleCleaner)})
	require.NoError(t, err)
	require.Len(t, cleaners, 2)
	assert.Equal(t, "c", cleaners[0].Login)
	assert.Equal(t, "d", cleaners[1].Login)
}

func TestServiceStore_SeedsDefaults(t *testing.T) {
	store := NewServiceStore()
	ctx := context.Background()

	services, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, services, len(domain.DefaultServices()))
	for i, s := range services {
		assert.Equal(t, i+1, s.ID)
	}

	id, err := store.Add(ctx, domain.Service{Name: "Extra", PricePerSquareMeter: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, len(services)+1, id)
}

func TestServiceStore_NoReseedAfterDeletingAll(t *testing.T) {
	store := NewServiceStore()
	ctx := context.Background()

	services, _ := store.List(ctx)
	for _, s := range services {
		_, err := store.Delete(ctx, s.ID)
		require.NoError(t, err)
	}

	services, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestCityStore_CRUD(t *testing.T) {
	store := NewCityStore()
	ctx := context.Background()

	id, err := store.Add(ctx, domain.City{Name: "Metropolis"})
	require.NoError(t, err)

	ok, err := store.Update(ctx, domain.City{ID: id, Name: "Gotham"})
	require.NoError(t, err)
	assert.True(t, ok)

	cities, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Gotham", cities[0].Name)

	ok, err = store.Update(ctx, domain.City{ID: 99, Name: "Nowhere"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestStore_Queries(t *testing.T) {
	store := NewRequestStore()
	ctx := context.Background()

	r1 := domain.Request{UserID: 1, CityID: 1, Status: domain.StatusNew, CleaningDate: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)}
	r2 := domain.Request{UserID: 2, CityID: 1, Status: domain.StatusCompleted, CleaningDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	r2.AssignCleaner(5)
	r3 := domain.Request{UserID: 1, CityID: 2, Status: domain.StatusInProgress}
	r3.AssignCleaner(5)

	for _, r := range []domain.Request{r1, r2, r3} {
		_, err := store.Add(ctx, r)
		require.NoError(t, err)
	}

	byUser, err := store.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byCleaner, err := store.ListByCleaner(ctx, 5)
	require.NoError(t, err)
	require.Len(t, byCleaner, 2)
	assert.Equal(t, 2, byCleaner[0].ID)

	completed, err := store.List(ctx, &domain.RequestFilter{Status: domain.Ptr(domain.StatusCompleted)})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].ID)

	march, err := store.List(ctx, &domain.RequestFilter{
		StartDate: domain.Ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   domain.Ptr(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, 1, march[0].ID)
}

func TestRequestServiceStore_DeleteByRequest(t *testing.T) {
	store := NewRequestServiceStore()
	ctx := context.Background()

	for _, rs := range []domain.RequestService{
		{RequestID: 1, ServiceID: 1},
		{RequestID: 1, ServiceID: 2},
		{RequestID: 2, ServiceID: 1},
	} {
		_, err := store.Add(ctx, rs)
		require.NoError(t, err)
	}

	rows, err := store.ListByRequest(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	ok, err := store.DeleteByRequest(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteByRequest(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	rest, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, 2, rest[0].RequestID)
}

func TestPaymentStore_SecondPaymentForRequestIsStored(t *testing.T) {
	store := NewPaymentStore()
	ctx := context.Background()

	id1, err := store.Add(ctx, domain.Payment{RequestID: 4, TransactionID: "tx-1"})
	require.NoError(t, err)
	id2, err := store.Add(ctx, domain.Payment{RequestID: 4, TransactionID: "tx-2"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	first, err := store.GetByRequest(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "tx-1", first.TransactionID)
}

func TestPaymentStore_TransactionIDUnique(t *testing.T) {
	store := NewPaymentStore()
	ctx := context.Background()

	_, err := store.Add(ctx, domain.Payment{RequestID: 1, TransactionID: "tx-1"})
	require.NoError(t, err)

	_, err = store.Add(ctx, domain.Payment{RequestID: 2, TransactionID: "tx-1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestPaymentStore_Filter(t *testing.T) {
	store := NewPaymentStore()
	ctx := context.Background()
	_, _ = store.Add(ctx, domain.Payment{RequestID: 1, Status: domain.PaymentSuccess, TransactionID: "a"})
	_, _ = store.Add(ctx, domain.Payment{RequestID: 2, Status: domain.PaymentCancelled, TransactionID: "b"})

	cancelled, err := store.List(ctx, &domain.PaymentFilter{Status: domain.Ptr(domain.PaymentCancelled)})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, 2, cancelled[0].RequestID)
}

func TestStores_PointerFieldsAreNotShared(t *testing.T) {
	ctx := context.Background()

	users := NewUserStore()
	uid, err := users.Add(ctx, domain.User{Login: "anna", MiddleName: domain.Ptr("Petrovna")})
	require.NoError(t, err)
	u, _ := users.Get(ctx, uid)
	*u.MiddleName = "changed"
	u, _ = users.GetByLogin(ctx, "anna")
	assert.Equal(t, "Petrovna", *u.MiddleName)

	requests := NewRequestStore()
	rid, err := requests.Add(ctx, domain.Request{CleanerID: domain.Ptr(7)})
	require.NoError(t, err)
	listed, _ := requests.ListByCleaner(ctx, 7)
	require.Len(t, listed, 1)
	*listed[0].CleanerID = 99
	r, _ := requests.Get(ctx, rid)
	assert.Equal(t, 7, *r.CleanerID)
}
