package memory

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// Table is an ordered collection of records keyed by an integer id.
//
// Identifiers are allocated as the highest id ever seen plus one, so a
// deleted id is never handed out again while the Table lives. Rows keep
// insertion order. A Table optionally loads its rows lazily and writes
// the full collection back after every mutation, which is how the JSON
// backend reuses it.
type Table[T any] struct {
	mu      sync.Mutex
	name    string
	id      func(*T) *int
	load    func() ([]T, error)
	persist func([]T) error
	seed    func() []T
	clone   func(T) T

	loaded bool
	rows   []T
	nextID int
}

// TableOption configures a Table.
type TableOption[T any] func(*Table[T])

// WithLoader sets the function that reads the initial rows. A loader
// error is logged and healed: the table starts empty and the healed
// content is written back.
func WithLoader[T any](load func() ([]T, error)) TableOption[T] {
	return func(t *Table[T]) {
		t.load = load
	}
}

// WithPersist sets the function that receives the full collection after
// every mutation.
func WithPersist[T any](persist func([]T) error) TableOption[T] {
	return func(t *Table[T]) {
		t.persist = persist
	}
}

// WithSeed sets the rows inserted when the table is first found empty.
func WithSeed[T any](seed func() []T) TableOption[T] {
	return func(t *Table[T]) {
		t.seed = seed
	}
}

// WithClone sets the deep copy applied to rows crossing the table
// boundary. Rows holding pointers need one so callers never share
// memory with stored rows.
func WithClone[T any](clone func(T) T) TableOption[T] {
	return func(t *Table[T]) {
		t.clone = clone
	}
}

// NewTable creates a table. id returns a pointer to the id field of a row.
func NewTable[T any](name string, id func(*T) *int, opts ...TableOption[T]) *Table[T] {
	t := &Table[T]{
		name:   name,
		id:     id,
		nextID: 1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the collection name used in log and error messages.
func (t *Table[T]) Name() string {
	return t.name
}

// ensureLoaded must be called with mu held.
func (t *Table[T]) ensureLoaded() {
	if t.loaded {
		return
	}
	t.loaded = true

	heal := false
	if t.load != nil {
		rows, err := t.load()
		if err != nil {
			logger.Warn("%s unreadable, starting empty: %v", t.name, err)
			rows = nil
			heal = true
		}
		t.rows = rows
	}
	for i := range t.rows {
		if id := *t.id(&t.rows[i]); id >= t.nextID {
			t.nextID = id + 1
		}
	}

	if len(t.rows) == 0 && t.seed != nil {
		for _, row := range t.seed() {
			*t.id(&row) = t.nextID
			t.nextID++
			t.rows = append(t.rows, row)
		}
		logger.Debug("seeded %s with %d rows", t.name, len(t.rows))
		heal = true
	}

	if heal {
		if err := t.write(); err != nil {
			logger.Warn("%v", err)
		}
	}
}

// write must be called with mu held.
func (t *Table[T]) write() error {
	if t.persist == nil {
		return nil
	}
	if err := t.persist(t.snapshot()); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrPersistence, t.name, err)
	}
	return nil
}

func (t *Table[T]) copyRow(v T) T {
	if t.clone == nil {
		return v
	}
	return t.clone(v)
}

func (t *Table[T]) snapshot() []T {
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *Table[T]) index(id int) int {
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

// Add assigns the next id to v, appends it and returns the id.
// When conflict reports true for any existing row, nothing is stored and
// domain.ErrAlreadyExists is returned.
func (t *Table[T]) Add(v T, conflict func(existing, added *T) bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureLoaded()

	if conflict != nil {
		for i := range t.rows {
			if conflict(&t.rows[i], &v) {
				return 0, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, t.name)
			}
		}
	}

	id := t.nextID
	t.nextID++
	*t.id(&v) = id
	t.rows = append(t.rows, t.copyRow(v))
	return id, t.write()
}

// Get returns a copy of the row with the given id, or nil.
func (t *Table[T]) Get(id int) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureLoaded()

	i := t.index(id)
	if i < 0 {
		return nil
	}
	row := t.copyRow(t.rows[i])
	return &row
}

// First returns a copy of the first row accepted by match, or nil.
func (t *Table[T]) First(match func(*T) bool) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureLoaded()

	for i := range t.rows {
		if match(&t.rows[i]) {
			row := t.copyRow(t.rows[i])
			return &row
		}
	}
	return nil
}

// List returns the rows accepted by match in insertion order.
// A nil match accepts every row.
func (t *Table[T]) List(match func(*T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureLoaded()

	out := make([]T, 0, len(t.rows))
	for i := range t.rows {
		if match == nil || match(&t.rows[i]) {
			out = append(out, t.copyRow(t.rows[i]))
		}
	}
	return out
}

// Update merges v into the row with the same id. merge receives the
// stored row and the new value; a nil merge replaces the row.
// Returns false if no row has that id.
func (t *Table[T]) Update(v T, merge func(dst *T, src T), conflict func(existing, updated *T) bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureLoaded()

	v = t.copyRow(v)
	id := *t.id(&v)
	i := t.index(id)
	if i < 0 {
		return false, nil
	}
	if conflict != nil {
		for j := range t.rows {
			if j != i && conflict(&t.rows[j], &v) {
				return false, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, t.name)
			}
		}
	}

	if merge != nil {
		merge(&t.rows[i], v)
		*t.id(&t.rows[i]) = id
	} else {
		t.rows[i] = v
	}
	return true, t.write()
}

// Delete removes the row with the given id. Returns false if absent.
func (t *Table[T]) Delete(id int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureLoaded()

	i := t.index(id)
	if i < 0 {
		return false, nil
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true, t.write()
}

// DeleteWhere removes every row accepted by match and returns how many
// were removed. Nothing is written when no row matches.
func (t *Table[T]) DeleteWhere(match func(*T) bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureLoaded()

	kept := t.rows[:0]
	removed := 0
	for _, row := range t.rows {
		if match(&row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, t.write()
}
