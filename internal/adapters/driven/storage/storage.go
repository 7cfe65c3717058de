// Package storage selects and opens an entity storage backend.
package storage

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// Backend is an opened storage backend.
type Backend struct {
	driven.Stores

	Kind     domain.StorageBackend
	Location string
	close    func() error
}

// Close releases the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open opens the backend of the given kind in dataDir.
// An empty dataDir means the backend's default location.
func Open(ctx context.Context, kind domain.StorageBackend, dataDir string) (*Backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch kind {
	case domain.BackendJSON, "":
		store, err := jsonfile.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening json storage: %w", err)
		}
		logger.Debug("storage: json files in %s", store.Path())
		return &Backend{
			Stores: driven.Stores{
				Users:           store.UserStore(),
				Cities:          store.CityStore(),
				Services:        store.ServiceStore(),
				Requests:        store.RequestStore(),
				RequestServices: store.RequestServiceStore(),
				Payments:        store.PaymentStore(),
			},
			Kind:     domain.BackendJSON,
			Location: store.Path(),
			close:    store.Close,
		}, nil

	case domain.BackendSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite storage: %w", err)
		}
		logger.Debug("storage: sqlite database %s", store.Path())
		return &Backend{
			Stores: driven.Stores{
				Users:           store.UserStore(),
				Cities:          store.CityStore(),
				Services:        store.ServiceStore(),
				Requests:        store.RequestStore(),
				RequestServices: store.RequestServiceStore(),
				Payments:        store.PaymentStore(),
			},
			Kind:     domain.BackendSQLite,
			Location: store.Path(),
			close:    store.Close,
		}, nil

	case domain.BackendMemory:
		logger.Debug("storage: in-memory, nothing is persisted")
		return &Backend{
			Stores:   NewMemoryStores(),
			Kind:     domain.BackendMemory,
			Location: ":memory:",
		}, nil

	default:
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, kind)
	}
}

// NewMemoryStores returns a fresh set of in-memory stores.
func NewMemoryStores() driven.Stores {
	return driven.Stores{
		Users:           memory.NewUserStore(),
		Cities:          memory.NewCityStore(),
		Services:        memory.NewServiceStore(),
		Requests:        memory.NewRequestStore(),
		RequestServices: memory.NewRequestServiceStore(),
		Payments:        memory.NewPaymentStore(),
	}
}
