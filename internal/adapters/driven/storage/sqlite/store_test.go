package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cleaning-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// createTestUser inserts a user to satisfy foreign key constraints.
func createTestUser(t *testing.T, store *Store, login string, role domain.Role) int {
	t.Helper()
	id, err := store.UserStore().Add(context.Background(), domain.User{
		LastName: "Test", FirstName: login, Login: login, Password: "pw", Role: role,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return id
}

// createTestCity inserts a city to satisfy foreign key constraints.
func createTestCity(t *testing.T, store *Store, name string) int {
	t.Helper()
	id, err := store.CityStore().Add(context.Background(), domain.City{Name: name})
	require.NoError(t, err)
	return id
}

func newRequest(userID, cityID int, day time.Time, status domain.RequestStatus) domain.Request {
	return domain.Request{
		UserID: userID, CityID: cityID, Area: decimal.NewFromInt(40), CleaningDate: day,
		District: "Center", Address: "Main st. 1", TotalCost: decimal.NewFromInt(2100),
		Status: status, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, DatabaseFile)
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var version int
	err := store.db.QueryRow("SELECT version FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	for _, table := range []string{"users", "cities", "services", "requests", "request_services", "payments"} {
		var exists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.Equal(t, 1, exists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenIsNoChange(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	createTestCity(t, first, "Metropolis")
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	cities, err := second.CityStore().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cities, 1)
}

func TestNewStore_ForeignKeysEnabled(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var fkEnabled int
	err := store.db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	require.NoError(t, err)
	assert.Equal(t, 1, fkEnabled)
}

func TestStore_Close(t *testing.T) {
	store, _ := setupTestStore(t)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

func TestStore_InterfaceGetters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.UserStore())
	assert.NotNil(t, store.CityStore())
	assert.NotNil(t, store.ServiceStore())
	assert.NotNil(t, store.RequestStore())
	assert.NotNil(t, store.RequestServiceStore())
	assert.NotNil(t, store.PaymentStore())
}

// ==================== UserStore Tests ====================

func TestUserStore_AddAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	users := store.UserStore()

	middle := "Petrovna"
	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	id, err := users.Add(ctx, domain.User{
		LastName: "Ivanova", FirstName: "Anna", MiddleName: &middle,
		Login: "anna", Password: "secret", Role: domain.RoleClient, CreatedAt: created,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	got, err := users.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ivanova Anna Petrovna", got.FullName())
	assert.Equal(t, domain.RoleClient, got.Role)
	assert.True(t, created.Equal(got.CreatedAt))

	byLogin, err := users.GetByLogin(ctx, "anna")
	require.NoError(t, err)
	require.NotNil(t, byLogin)
	assert.Equal(t, id, byLogin.ID)
}

func TestUserStore_Misses(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	users := store.UserStore()

	got, err := users.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = users.GetByLogin(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err := users.Update(ctx, domain.User{ID: 42, Login: "ghost", Role: domain.RoleClient})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = users.Delete(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserStore_LoginUnique(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, store, "anna", domain.RoleClient)
	other := createTestUser(t, store, "boris", domain.RoleClient)

	_, err := store.UserStore().Add(ctx, domain.User{Login: "anna", Role: domain.RoleClient})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = store.UserStore().Update(ctx, domain.User{ID: other, Login: "anna", Role: domain.RoleClient})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestUserStore_UpdateKeepsCreatedAt(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	users := store.UserStore()

	id := createTestUser(t, store, "anna", domain.RoleClient)
	before, _ := users.Get(ctx, id)

	updated := *before
	updated.Role = domain.RoleCleaner
	updated.CreatedAt = time.Now()
	ok, err := users.Update(ctx, updated)
	require.NoError(t, err)
	assert.True(t, ok)

	after, _ := users.Get(ctx, id)
	assert.Equal(t, domain.RoleCleaner, after.Role)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestUserStore_ListFilter(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, store, "admin", domain.RoleAdmin)
	createTestUser(t, store, "c1", domain.RoleCleaner)
	createTestUser(t, store, "c2", domain.RoleCleaner)

	all, err := store.UserStore().List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cleaners, err := store.UserStore().List(ctx, &domain.UserFilter{Role: domain.Ptr(domain.RoleCleaner)})
	require.NoError(t, err)
	require.Len(t, cleaners, 2)
	assert.Equal(t, "c1", cleaners[0].Login)

	none, err := store.UserStore().List(ctx, &domain.UserFilter{CreatedFrom: domain.Ptr(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.Empty(t, none)

	blank, err := store.UserStore().List(ctx, &domain.UserFilter{Role: domain.Ptr(domain.Role(""))})
	require.NoError(t, err)
	assert.Empty(t, blank, "an empty role is matched exactly")

	city := createTestCity(t, store, "Metropolis")
	_, err = store.RequestStore().Add(ctx, newRequest(1, city, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), domain.StatusNew))
	require.NoError(t, err)
	requests, err := store.RequestStore().List(ctx, &domain.RequestFilter{Status: domain.Ptr(domain.RequestStatus(""))})
	require.NoError(t, err)
	assert.Empty(t, requests, "an empty status is matched exactly")
}

func TestUserStore_IDsNeverReused(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, store, "a", domain.RoleClient)
	id2 := createTestUser(t, store, "b", domain.RoleClient)
	_, err := store.UserStore().Delete(ctx, id2)
	require.NoError(t, err)

	id3 := createTestUser(t, store, "c", domain.RoleClient)
	assert.Equal(t, id2+1, id3)
}

// ==================== ServiceStore Tests ====================

func TestServiceStore_SeedsDefaults(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	services, err := store.ServiceStore().List(ctx)
	require.NoError(t, err)
	defaults := domain.DefaultServices()
	require.Len(t, services, len(defaults))
	for i, s := range services {
		assert.Equal(t, i+1, s.ID)
		assert.Equal(t, defaults[i].Name, s.Name)
		assert.True(t, defaults[i].PricePerSquareMeter.Equal(s.PricePerSquareMeter))
		assert.Equal(t, defaults[i].RequiresArea, s.RequiresArea)
	}
}

func TestServiceStore_UpdateAndDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	services := store.ServiceStore()

	id, err := services.Add(ctx, domain.Service{Name: "Ironing", PricePerSquareMeter: decimal.RequireFromString("12.5")})
	require.NoError(t, err)

	ok, err := services.Update(ctx, domain.Service{ID: id, Name: "Ironing", PricePerSquareMeter: decimal.NewFromInt(15), RequiresArea: true})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := services.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.NewFromInt(15).Equal(got.PricePerSquareMeter))
	assert.True(t, got.RequiresArea)

	ok, err = services.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = services.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ==================== RequestStore Tests ====================

func TestRequestStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	client := createTestUser(t, store, "client", domain.RoleClient)
	cleaner := createTestUser(t, store, "cleaner", domain.RoleCleaner)
	city := createTestCity(t, store, "Metropolis")

	r := newRequest(client, city, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), domain.StatusNew)
	r.Area = decimal.RequireFromString("42.75")
	id, err := store.RequestStore().Add(ctx, r)
	require.NoError(t, err)

	got, err := store.RequestStore().Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("42.75").Equal(got.Area))
	assert.Nil(t, got.CleanerID)
	assert.Equal(t, domain.StatusNew, got.Status)

	got.Status = domain.StatusInProgress
	got.AssignCleaner(cleaner)
	got.PaymentID = 7
	ok, err := store.RequestStore().Update(ctx, *got)
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := store.RequestStore().Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, after.CleanerID)
	assert.Equal(t, cleaner, *after.CleanerID)
	assert.Equal(t, 7, after.PaymentID)
	assert.Equal(t, domain.StatusInProgress, after.Status)
}

func TestRequestStore_Filters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	requests := store.RequestStore()

	client := createTestUser(t, store, "client", domain.RoleClient)
	cleaner := createTestUser(t, store, "cleaner", domain.RoleCleaner)
	city1 := createTestCity(t, store, "A")
	city2 := createTestCity(t, store, "B")

	march := newRequest(client, city1, time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), domain.StatusCompleted)
	march.AssignCleaner(cleaner)
	june := newRequest(client, city2, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), domain.StatusCompleted)
	june.AssignCleaner(cleaner)
	open := newRequest(client, city1, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), domain.StatusNew)

	for _, r := range []domain.Request{march, june, open} {
		_, err := requests.Add(ctx, r)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter *domain.RequestFilter
		want   []int
	}{
		{"nil filter", nil, []int{1, 2, 3}},
		{"empty filter", &domain.RequestFilter{}, []int{1, 2, 3}},
		{"status", &domain.RequestFilter{Status: domain.Ptr(domain.StatusCompleted)}, []int{1, 2}},
		{"cleaner", &domain.RequestFilter{CleanerID: domain.Ptr(cleaner)}, []int{1, 2}},
		{"city", &domain.RequestFilter{CityID: domain.Ptr(city1)}, []int{1, 3}},
		{"client", &domain.RequestFilter{ClientID: domain.Ptr(client)}, []int{1, 2, 3}},
		{"end day inclusive", &domain.RequestFilter{
			StartDate: domain.Ptr(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)),
			EndDate:   domain.Ptr(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)),
		}, []int{1}},
		{"combined", &domain.RequestFilter{
			Status:    domain.Ptr(domain.StatusCompleted),
			StartDate: domain.Ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:   domain.Ptr(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)),
		}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := requests.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	byCleaner, err := requests.ListByCleaner(ctx, cleaner)
	require.NoError(t, err)
	assert.Len(t, byCleaner, 2)

	byUser, err := requests.ListByUser(ctx, client)
	require.NoError(t, err)
	assert.Len(t, byUser, 3)
}

func TestRequestStore_CityDeleteRestricted(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	client := createTestUser(t, store, "client", domain.RoleClient)
	city := createTestCity(t, store, "Metropolis")
	_, err := store.RequestStore().Add(ctx, newRequest(client, city, time.Now(), domain.StatusNew))
	require.NoError(t, err)

	_, err = store.CityStore().Delete(ctx, city)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

// ==================== RequestServiceStore Tests ====================

func TestRequestServiceStore_CascadeAndDeleteByRequest(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	client := createTestUser(t, store, "client", domain.RoleClient)
	city := createTestCity(t, store, "Metropolis")
	services, err := store.ServiceStore().List(ctx)
	require.NoError(t, err)

	r1, err := store.RequestStore().Add(ctx, newRequest(client, city, time.Now(), domain.StatusNew))
	require.NoError(t, err)
	r2, err := store.RequestStore().Add(ctx, newRequest(client, city, time.Now(), domain.StatusNew))
	require.NoError(t, err)

	joins := store.RequestServiceStore()
	for _, rs := range []domain.RequestService{
		{RequestID: r1, ServiceID: services[0].ID},
		{RequestID: r1, ServiceID: services[2].ID},
		{RequestID: r2, ServiceID: services[1].ID},
	} {
		_, err := joins.Add(ctx, rs)
		require.NoError(t, err)
	}

	rows, err := joins.ListByRequest(ctx, r1)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	ok, err := joins.DeleteByRequest(ctx, r1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = joins.DeleteByRequest(ctx, r1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.RequestStore().Delete(ctx, r2)
	require.NoError(t, err)

	all, err := joins.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ==================== PaymentStore Tests ====================

func TestPaymentStore_SecondPaymentAndUniqueTransaction(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	payments := store.PaymentStore()

	paid := time.Date(2024, 5, 20, 14, 0, 0, 0, time.UTC)
	id1, err := payments.Add(ctx, domain.Payment{
		RequestID: 4, CardNumberMasked: "**** **** **** 0366", PaymentDate: paid,
		Amount: decimal.NewFromInt(100), Status: domain.PaymentSuccess, TransactionID: "tx-1",
	})
	require.NoError(t, err)
	id2, err := payments.Add(ctx, domain.Payment{RequestID: 4, PaymentDate: paid, Amount: decimal.NewFromInt(5), TransactionID: "tx-2"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	first, err := payments.GetByRequest(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "tx-1", first.TransactionID)
	assert.True(t, decimal.NewFromInt(100).Equal(first.Amount))

	_, err = payments.Add(ctx, domain.Payment{RequestID: 5, PaymentDate: paid, Amount: decimal.Zero, TransactionID: "tx-1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	none, err := payments.GetByRequest(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestPaymentStore_UpdateAndFilter(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	payments := store.PaymentStore()

	id, err := payments.Add(ctx, domain.Payment{
		RequestID: 1, PaymentDate: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(10), Status: domain.PaymentSuccess,
	})
	require.NoError(t, err)

	p, err := payments.Get(ctx, id)
	require.NoError(t, err)
	p.Status = domain.PaymentCancelled
	ok, err := payments.Update(ctx, *p)
	require.NoError(t, err)
	assert.True(t, ok)

	cancelled, err := payments.List(ctx, &domain.PaymentFilter{Status: domain.Ptr(domain.PaymentCancelled)})
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)

	later, err := payments.List(ctx, &domain.PaymentFilter{StartDate: domain.Ptr(time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.Empty(t, later)
}
