package driven

// Configuration keys understood by the settings service.
const (
	ConfigStorageBackend = "storage.backend"
	ConfigStorageDataDir = "storage.data_dir"
	ConfigLogVerbose     = "log.verbose"
)

// ConfigStore provides access to application configuration.
// Keys use dot notation ("storage.backend"); implementations map them to
// their own layout and handle persistence.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Unset removes a key and persists immediately. Removing a missing key
	// is not an error.
	Unset(key string) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
