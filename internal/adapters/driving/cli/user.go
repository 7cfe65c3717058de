package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

var userListRole string

var userCmd = &cobra.Command{
	Use:         "user",
	Short:       "Manage user accounts",
	Annotations: needsStorage,
}

var userWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE:  runUserWhoami,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts (admin)",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userRoleCmd = &cobra.Command{
	Use:   "role [id] [role]",
	Short: "Change the role of an account (admin)",
	Long: `Changes the role of an account. Roles: Admin, Cleaner, Client.

You cannot change your own role, and the last administrator cannot be demoted.`,
	Args: cobra.ExactArgs(2),
	RunE: runUserRole,
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Delete an account that no request references (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserRemove,
}

func init() {
	userListCmd.Flags().StringVar(&userListRole, "role", "", "only show accounts with this role")
	userCmd.AddCommand(userWhoamiCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userRoleCmd)
	userCmd.AddCommand(userRemoveCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserWhoami(cmd *cobra.Command, _ []string) error {
	user, err := currentUser(cmd)
	if err != nil {
		return err
	}
	cmd.Printf("%s (%s), id %d, role %s\n", user.FullName(), user.Login, user.ID, user.Role)
	return nil
}

func runUserList(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	if _, err := currentActor(cmd, domain.RoleAdmin); err != nil {
		return err
	}

	var filter *domain.UserFilter
	if userListRole != "" {
		role, err := domain.ParseRole(userListRole)
		if err != nil {
			return err
		}
		filter = &domain.UserFilter{Role: &role}
	}

	users, err := userService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	rows := make([][]string, 0, len(users))
	for i := range users {
		u := &users[i]
		rows = append(rows, []string{
			strconv.Itoa(u.ID), u.Login, u.FullName(), u.Role.String(), u.CreatedAt.Format(dateLayout),
		})
	}
	printTable(cmd, "Users", []string{"ID", "Login", "Name", "Role", "Created"}, rows, "No users.")
	return nil
}

func runUserRole(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	actor, err := currentActor(cmd, domain.RoleAdmin)
	if err != nil {
		return err
	}

	if err := userService.ApplyRole(cmd.Context(), actor, id, args[1]); err != nil {
		return fmt.Errorf("failed to change role: %w", err)
	}
	printSuccess(cmd, "User %d is now %s", id, args[1])
	return nil
}

func runUserRemove(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	actor, err := currentActor(cmd, domain.RoleAdmin)
	if err != nil {
		return err
	}

	if err := userService.Remove(cmd.Context(), actor, id); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	printSuccess(cmd, "Removed user %d", id)
	return nil
}
