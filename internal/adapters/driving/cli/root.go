// Package cli provides the cobra command tree of the cleaning CLI.
//
// The CLI is a thin presentation layer: it resolves the acting user from
// --login/--password, calls the driving ports and renders the results.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// storageAnnotation marks command groups that need an opened backend.
const storageAnnotation = "cleaning/storage"

var needsStorage = map[string]string{storageAnnotation: "true"}

var version = "dev"

// Services injected by main.
var (
	userService       driving.UserService
	cityService       driving.CityService
	catalogService    driving.CatalogService
	requestService    driving.RequestService
	statisticsService driving.StatisticsService
	settingsService   driving.SettingsService
)

// Persistent flags.
var (
	flagLogin    string
	flagPassword string
	flagBackend  string
	flagDataDir  string
	flagVerbose  bool
)

// Services holds the services that need an opened storage backend.
type Services struct {
	Users      driving.UserService
	Cities     driving.CityService
	Catalog    driving.CatalogService
	Requests   driving.RequestService
	Statistics driving.StatisticsService
}

// Opener opens the storage backend and builds the services over it.
// The returned function releases the backend.
type Opener func(ctx context.Context, backend domain.StorageBackend, dataDir string) (*Services, func() error, error)

var (
	opener       Opener
	closeBackend func() error
)

var rootCmd = &cobra.Command{
	Use:   "cleaning",
	Short: "Manage a cleaning business from the terminal",
	Long: `cleaning keeps track of clients, cleaners, cities, the service catalog,
cleaning requests and their payments.

Most commands act on behalf of a user given with --login and --password.
Run 'cleaning init' once to create the first administrator.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagLogin, "login", "l", "", "login of the acting user")
	pf.StringVarP(&flagPassword, "password", "p", "", "password of the acting user (prompted when omitted)")
	pf.StringVar(&flagBackend, "backend", "", "storage backend: json, sqlite or memory")
	pf.StringVar(&flagDataDir, "data-dir", "", "directory holding the data files")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "print store and service activity to stderr")
}

// SetVersion sets the version printed by 'cleaning version'.
func SetVersion(v string) {
	version = v
}

// SetSettingsService injects the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetOpener injects the function that opens storage on demand.
func SetOpener(o Opener) {
	opener = o
}

// SetServices injects storage-backed services directly.
func SetServices(s *Services) {
	userService = s.Users
	cityService = s.Cities
	catalogService = s.Catalog
	requestService = s.Requests
	statisticsService = s.Statistics
}

// Execute runs the root command and releases storage afterwards.
func Execute() error {
	defer func() {
		if closeBackend == nil {
			return
		}
		if err := closeBackend(); err != nil {
			logger.Warn("closing storage: %v", err)
		}
		closeBackend = nil
	}()
	return rootCmd.Execute()
}

// prepare applies the verbose setting and opens storage for the command
// groups that need it.
func prepare(cmd *cobra.Command, _ []string) error {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		settings = *s
	}
	if flagVerbose || settings.Verbose {
		logger.SetVerbose(true)
	}

	if !wantsStorage(cmd) || opener == nil || closeBackend != nil {
		return nil
	}

	backend := settings.Storage.Backend
	if flagBackend != "" {
		backend = domain.StorageBackend(flagBackend)
		if !backend.IsValid() {
			return fmt.Errorf("unknown backend %q (use json, sqlite or memory)", flagBackend)
		}
	}
	dataDir := settings.Storage.DataDir
	if flagDataDir != "" {
		dataDir = flagDataDir
	}

	services, closer, err := opener(cmd.Context(), backend, dataDir)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", backend, err)
	}
	SetServices(services)
	closeBackend = closer
	return nil
}

func wantsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[storageAnnotation] == "true" {
			return true
		}
	}
	return false
}

// currentUser authenticates the acting user from the persistent flags,
// prompting for whatever is missing.
func currentUser(cmd *cobra.Command) (*domain.User, error) {
	if userService == nil {
		return nil, errors.New("user service not configured")
	}
	login := flagLogin
	if login == "" {
		login = prompt(cmd, "Login: ")
	}
	password := flagPassword
	if password == "" {
		password = readPassword(cmd, "Password: ")
	}

	user, err := userService.Authenticate(cmd.Context(), login, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, errors.New("invalid login or password")
		}
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	logger.Debug("signed in as %s (%s)", user.Login, user.Role)
	return user, nil
}

// currentActor authenticates and requires one of roles, if any are given.
func currentActor(cmd *cobra.Command, roles ...domain.Role) (domain.Actor, error) {
	user, err := currentUser(cmd)
	if err != nil {
		return domain.Actor{}, err
	}
	if len(roles) == 0 {
		return domain.ActorFor(*user), nil
	}
	for _, r := range roles {
		if user.Role == r {
			return domain.ActorFor(*user), nil
		}
	}
	return domain.Actor{}, fmt.Errorf("this command requires the %s role", joinRoles(roles))
}

func joinRoles(roles []domain.Role) string {
	s := ""
	for i, r := range roles {
		switch {
		case i == 0:
		case i == len(roles)-1:
			s += " or "
		default:
			s += ", "
		}
		s += r.String()
	}
	return s
}
