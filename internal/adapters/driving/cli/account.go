package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

var (
	regLastName   string
	regFirstName  string
	regMiddleName string
)

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Create the first administrator account",
	Long:        `Creates the first account of an empty installation with the Admin role.`,
	Args:        cobra.NoArgs,
	Annotations: needsStorage,
	RunE:        runInit,
}

var registerCmd = &cobra.Command{
	Use:         "register",
	Short:       "Register a client account",
	Long:        `Registers a new account with the Client role. An administrator can promote it later.`,
	Args:        cobra.NoArgs,
	Annotations: needsStorage,
	RunE:        runRegister,
}

func init() {
	for _, c := range []*cobra.Command{initCmd, registerCmd} {
		c.Flags().StringVar(&regLastName, "last-name", "", "last name")
		c.Flags().StringVar(&regFirstName, "first-name", "", "first name")
		c.Flags().StringVar(&regMiddleName, "middle-name", "", "middle name (optional)")
		rootCmd.AddCommand(c)
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	return createAccount(cmd, userService.Bootstrap)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	return createAccount(cmd, userService.Register)
}

type createFunc func(ctx context.Context, reg domain.Registration) (*domain.User, error)

// registration collects the account fields, prompting for the missing
// ones. A prompted password is asked twice.
func registration(cmd *cobra.Command) domain.Registration {
	reg := domain.Registration{
		LastName:   regLastName,
		FirstName:  regFirstName,
		MiddleName: regMiddleName,
		Login:      flagLogin,
		Password:   flagPassword,
	}
	if reg.LastName == "" {
		reg.LastName = prompt(cmd, "Last name: ")
	}
	if reg.FirstName == "" {
		reg.FirstName = prompt(cmd, "First name: ")
	}
	if reg.Login == "" {
		reg.Login = prompt(cmd, "Login: ")
	}
	if reg.Password == "" {
		reg.Password = readPassword(cmd, "Password: ")
		reg.ConfirmPassword = readPassword(cmd, "Confirm password: ")
	} else {
		reg.ConfirmPassword = reg.Password
	}
	return reg
}

func createAccount(cmd *cobra.Command, create createFunc) error {
	user, err := create(cmd.Context(), registration(cmd))
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	printSuccess(cmd, "Created %s account %q (id %d)", user.Role, user.Login, user.ID)
	return nil
}
