// Package jsonfile provides the flat-file storage backend.
//
// Each entity kind lives in its own indented JSON array under the data
// directory (database-users.json, database-cities.json, ...). The
// typed stores are the memory stores with a file loader and a persist
// hook: a collection is read on first access and rewritten in full,
// through a temporary file and a rename, after every mutation.
//
// # Recovery
//
// A missing file is an empty collection. A file that cannot be decoded is
// logged, treated as empty and overwritten with the healed content; the
// service catalog is re-seeded in that case. Write failures are returned
// wrapped with domain.ErrPersistence.
//
// # Thread Safety
//
// Each collection is guarded by its own mutex, so the store is safe for
// concurrent use inside one process. Two processes writing the same
// directory can lose each other's updates and may allocate the same id.
package jsonfile
