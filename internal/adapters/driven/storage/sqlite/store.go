package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "cleaning.db"

// timeLayout is the text form of every stored timestamp.
const timeLayout = time.RFC3339Nano

// dayLayout is the text form of calendar-day columns.
const dayLayout = "2006-01-02"

// Store is a unified SQLite-based storage that provides access to
// all entity store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string

	seedOnce sync.Once
	seedErr  error
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.cleaning/data/cleaning.db.
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

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL for concurrent readers; foreign keys are per connection, so they
	// are set through the DSN for every pooled connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{store: s}
}

// CityStore returns a CityStore interface backed by this store.
func (s *Store) CityStore() driven.CityStore {
	return &cityStore{store: s}
}

// ServiceStore returns a ServiceStore interface backed by this store.
func (s *Store) ServiceStore() driven.ServiceStore {
	return &serviceStore{store: s}
}

// RequestStore returns a RequestStore interface backed by this store.
func (s *Store) RequestStore() driven.RequestStore {
	return &requestStore{store: s}
}

// RequestServiceStore returns a RequestServiceStore interface backed by this store.
func (s *Store) RequestServiceStore() driven.RequestServiceStore {
	return &requestServiceStore{store: s}
}

// PaymentStore returns a PaymentStore interface backed by this store.
func (s *Store) PaymentStore() driven.PaymentStore {
	return &paymentStore{store: s}
}

// migrate applies the embedded migrations with golang-migrate.
func (s *Store) migrate() error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		src.Close()
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		src.Close()
		return fmt.Errorf("creating migrator: %w", err)
	}
	// m.Close would also close s.db through the driver.
	defer src.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, _, err := m.Version()
	if err == nil {
		logger.Debug("sqlite schema at version %d (%s)", version, s.path)
	}
	return nil
}

// seedServices fills an empty catalog with the defaults, once per Store.
func (s *Store) seedServices(ctx context.Context) error {
	s.seedOnce.Do(func() {
		var count int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM services").Scan(&count); err != nil {
			s.seedErr = fmt.Errorf("counting services: %w", err)
			return
		}
		if count > 0 {
			return
		}
		for _, svc := range domain.DefaultServices() {
			if _, err := insertService(ctx, s.db, svc); err != nil {
				s.seedErr = err
				return
			}
		}
		logger.Debug("seeded services with %d rows", len(domain.DefaultServices()))
	})
	return s.seedErr
}

// ==================== Helpers ====================

// writeErr classifies a failed write: unique violations become
// domain.ErrAlreadyExists, everything else domain.ErrPersistence.
func writeErr(op string, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, op)
		}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, op)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

// affected reports whether a statement touched at least one row.
func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, writeErr(op, err)
	}
	return n > 0, nil
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func formatDay(t time.Time) string {
	return domain.Date(t).Format(dayLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// where accumulates AND-combined conditions for a filtered query.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) dayRange(column string, from, to *time.Time) {
	if from != nil {
		w.add(column+" >= ?", formatDay(*from))
	}
	if to != nil {
		w.add(column+" <= ?", formatDay(*to))
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
