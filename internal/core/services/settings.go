package services

import (
	"fmt"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or unrecognised
// values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(driven.ConfigStorageDataDir),
		},
		Verbose: s.getBool(driven.ConfigLogVerbose, defaults.Verbose),
	}, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}

	if err := s.configStore.Set(driven.ConfigStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if settings.Storage.DataDir == "" {
		if err := s.configStore.Unset(driven.ConfigStorageDataDir); err != nil {
			return fmt.Errorf("save storage data_dir: %w", err)
		}
	} else if err := s.configStore.Set(driven.ConfigStorageDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save storage data_dir: %w", err)
	}
	if err := s.configStore.Set(driven.ConfigLogVerbose, settings.Verbose); err != nil {
		return fmt.Errorf("save log verbose: %w", err)
	}
	return nil
}

// SetBackend selects the storage backend. A non-empty dataDir replaces
// the configured data directory.
func (s *SettingsService) SetBackend(backend domain.StorageBackend, dataDir string) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.Backend = backend
	if dataDir != "" {
		settings.Storage.DataDir = dataDir
	}
	return s.Save(settings)
}

// SetVerbose persists the verbose logging preference.
func (s *SettingsService) SetVerbose(verbose bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Verbose = verbose
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns where settings are stored.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(driven.ConfigStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
