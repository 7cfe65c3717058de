package domain

const unknownDescription = "Unknown"

// StorageBackend selects where entity collections are persisted.
type StorageBackend string

// Available storage backends.
const (
	// BackendJSON keeps one JSON file per entity kind.
	BackendJSON StorageBackend = "json"

	// BackendSQLite keeps all entity kinds in one SQLite database.
	BackendSQLite StorageBackend = "sqlite"

	// BackendMemory keeps everything in process memory.
	BackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case BackendJSON, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

// IsDurable returns true if data survives the process.
func (b StorageBackend) IsDurable() bool {
	return b == BackendJSON || b == BackendSQLite
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case BackendJSON:
		return "JSON files (one file per collection)"
	case BackendSQLite:
		return "SQLite database"
	case BackendMemory:
		return "In-memory (not persisted)"
	default:
		return unknownDescription
	}
}

// AllStorageBackends returns all supported backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{BackendJSON, BackendSQLite, BackendMemory}
}

// StorageSettings configures persistence.
type StorageSettings struct {
	Backend StorageBackend
	// DataDir holds the JSON files or the SQLite database.
	// Empty means ~/.cleaning/data.
	DataDir string
}

// AppSettings contains all user-configurable settings.
type AppSettings struct {
	Storage StorageSettings
	Verbose bool
}

// DefaultAppSettings returns settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: BackendJSON,
		},
	}
}
