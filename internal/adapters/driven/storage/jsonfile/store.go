package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
)

// File names, one per entity kind.
const (
	UsersFile           = "database-users.json"
	CitiesFile          = "database-cities.json"
	ServicesFile        = "database-services.json"
	RequestsFile        = "database-requests.json"
	RequestServicesFile = "database-request-services.json"
	PaymentsFile        = "database-payments.json"
)

// Store keeps every entity kind in its own JSON file under one directory.
type Store struct {
	dir string

	users           *memory.UserStore
	cities          *memory.CityStore
	services        *memory.ServiceStore
	requests        *memory.RequestStore
	requestServices *memory.RequestServiceStore
	payments        *memory.PaymentStore
}

// NewStore creates a JSON file store in dataDir.
// If dataDir is empty, defaults to ~/.cleaning/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".cleaning", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{
		dir:             dataDir,
		users:           memory.NewUserStore(fileBacked[domain.User](filepath.Join(dataDir, UsersFile))...),
		cities:          memory.NewCityStore(fileBacked[domain.City](filepath.Join(dataDir, CitiesFile))...),
		services:        memory.NewServiceStore(fileBacked[domain.Service](filepath.Join(dataDir, ServicesFile))...),
		requests:        memory.NewRequestStore(fileBacked[domain.Request](filepath.Join(dataDir, RequestsFile))...),
		requestServices: memory.NewRequestServiceStore(fileBacked[domain.RequestService](filepath.Join(dataDir, RequestServicesFile))...),
		payments:        memory.NewPaymentStore(fileBacked[domain.Payment](filepath.Join(dataDir, PaymentsFile))...),
	}, nil
}

// Close releases the store. Every mutation is already on disk.
func (s *Store) Close() error {
	return nil
}

// Path returns the data directory.
func (s *Store) Path() string {
	return s.dir
}

// UserStore returns a UserStore backed by database-users.json.
func (s *Store) UserStore() driven.UserStore {
	return s.users
}

// CityStore returns a CityStore backed by database-cities.json.
func (s *Store) CityStore() driven.CityStore {
	return s.cities
}

// ServiceStore returns a ServiceStore backed by database-services.json.
func (s *Store) ServiceStore() driven.ServiceStore {
	return s.services
}

// RequestStore returns a RequestStore backed by database-requests.json.
func (s *Store) RequestStore() driven.RequestStore {
	return s.requests
}

// RequestServiceStore returns a RequestServiceStore backed by
// database-request-services.json.
func (s *Store) RequestServiceStore() driven.RequestServiceStore {
	return s.requestServices
}

// PaymentStore returns a PaymentStore backed by database-payments.json.
func (s *Store) PaymentStore() driven.PaymentStore {
	return s.payments
}

// fileBacked wires a memory table to one JSON file.
func fileBacked[T any](path string) []memory.TableOption[T] {
	return []memory.TableOption[T]{
		memory.WithLoader(func() ([]T, error) { return readRows[T](path) }),
		memory.WithPersist(func(rows []T) error { return writeRows(path, rows) }),
	}
}

// readRows returns nil for a missing or blank file.
func readRows[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// writeRows replaces the file atomically with the indented collection.
func writeRows[T any](path string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
