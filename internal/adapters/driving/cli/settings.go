package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

var settingsBackendDir string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure where data is stored and how much is logged.

Settings are kept in ~/.cleaning/config.toml. The --backend, --data-dir and
--verbose flags override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend [json|sqlite|memory]",
	Short: "Select the storage backend",
	Long: `Select the storage backend.

Available backends:
  json    - one JSON file per collection (default)
  sqlite  - a single SQLite database
  memory  - nothing is persisted (useful for trying things out)`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsBackend,
}

var settingsVerboseCmd = &cobra.Command{
	Use:   "verbose [on|off]",
	Short: "Turn verbose logging on or off",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsVerbose,
}

func init() {
	settingsBackendCmd.Flags().StringVar(&settingsBackendDir, "dir", "", "data directory for the backend")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsVerboseCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	dir := settings.Storage.DataDir
	if dir == "" {
		dir = "(default)"
	}
	cmd.Printf("  Data directory: %s\n", dir)
	if !settings.Storage.Backend.IsDurable() {
		cmd.Println("  " + warningStyle.Render("Data is lost when the command exits."))
	}
	cmd.Println()

	cmd.Println("[Logging]")
	cmd.Printf("  Verbose: %s\n", onOff(settings.Verbose))
	cmd.Println()

	cmd.Println(mutedStyle.Render("Config file: " + settingsService.ConfigPath()))
	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StorageBackend(args[0])
	if err := settingsService.SetBackend(backend, settingsBackendDir); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}
	printSuccess(cmd, "Storage backend set to: %s", backend.Description())
	return nil
}

func runSettingsVerbose(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	verbose, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetVerbose(verbose); err != nil {
		return fmt.Errorf("failed to set verbose: %w", err)
	}
	printSuccess(cmd, "Verbose logging: %s", onOff(verbose))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
	return b, nil
}
