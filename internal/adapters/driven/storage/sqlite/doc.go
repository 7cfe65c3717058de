// Package sqlite provides the relational storage backend.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements all six entity store
// interfaces through a single database connection.
//
// # Schema
//
// The schema is managed with golang-migrate from the embedded migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
// Primary keys use AUTOINCREMENT so identifiers are never reused. Login and
// payment transaction id carry unique indexes; requests reference users and
// cities with RESTRICT, and request service rows are removed with their
// request.
//
// Money and area are stored as decimal text. Timestamps are RFC 3339 text;
// date filters compare a separate calendar-day column.
//
// # Data Location
//
// By default, the database is stored at ~/.cleaning/data/cleaning.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
