// Command cleaning manages a cleaning business from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cleaning-cli/internal/adapters/driven/storage"
	"github.com/custodia-labs/cleaning-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/services"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	cli.SetVersion(version)
	cli.SetSettingsService(services.NewSettingsService(configStore))
	cli.SetOpener(openServices)
	return cli.Execute()
}

func openServices(ctx context.Context, kind domain.StorageBackend, dataDir string) (*cli.Services, func() error, error) {
	backend, err := storage.Open(ctx, kind, dataDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("using %s storage at %s", backend.Kind, backend.Location)

	return &cli.Services{
		Users:      services.NewUserService(backend.Users, backend.Requests),
		Cities:     services.NewCityService(backend.Cities, backend.Requests),
		Catalog:    services.NewCatalogService(backend.Services, backend.RequestServices),
		Requests:   services.NewRequestService(backend.Stores),
		Statistics: services.NewStatisticsService(backend.Requests, backend.Users),
	}, backend.Close, nil
}
