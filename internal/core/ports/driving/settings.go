package driving

import "github.com/custodia-labs/cleaning-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// SetBackend selects the storage backend and, when dataDir is not
	// empty, its data directory.
	SetBackend(backend domain.StorageBackend, dataDir string) error

	// SetVerbose persists the verbose logging preference.
	SetVerbose(verbose bool) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns where settings are stored.
	ConfigPath() string
}
