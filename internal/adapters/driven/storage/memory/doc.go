// Package memory provides in-memory implementations of the driven store ports.
//
// Every store is a thin typed wrapper over the generic Table, which owns
// identifier allocation, insertion order and locking. Tables accept an
// optional loader and persist hook; the jsonfile backend supplies both to
// turn these stores into file-backed ones.
//
// Stores without hooks keep data for the life of the process only and are
// used by tests and by the "memory" storage backend.
package memory
