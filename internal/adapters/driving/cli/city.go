package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

var cityCmd = &cobra.Command{
	Use:         "city",
	Short:       "Manage cities",
	Annotations: needsStorage,
}

var cityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cities",
	Args:  cobra.NoArgs,
	RunE:  runCityList,
}

var cityAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a city (admin)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCityAdd,
}

var cityRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a city that no request uses (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCityRemove,
}

func init() {
	cityCmd.AddCommand(cityListCmd)
	cityCmd.AddCommand(cityAddCmd)
	cityCmd.AddCommand(cityRemoveCmd)
	rootCmd.AddCommand(cityCmd)
}

func runCityList(cmd *cobra.Command, _ []string) error {
	if cityService == nil {
		return errors.New("city service not configured")
	}
	cities, err := cityService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list cities: %w", err)
	}

	rows := make([][]string, 0, len(cities))
	for _, c := range cities {
		rows = append(rows, []string{strconv.Itoa(c.ID), c.Name})
	}
	printTable(cmd, "Cities", []string{"ID", "Name"}, rows, "No cities. An administrator can add one with 'cleaning city add'.")
	return nil
}

func runCityAdd(cmd *cobra.Command, args []string) error {
	if cityService == nil {
		return errors.New("city service not configured")
	}
	if _, err := currentActor(cmd, domain.RoleAdmin); err != nil {
		return err
	}

	city, err := cityService.Add(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to add city: %w", err)
	}
	printSuccess(cmd, "Added city %q (id %d)", city.Name, city.ID)
	return nil
}

func runCityRemove(cmd *cobra.Command, args []string) error {
	if cityService == nil {
		return errors.New("city service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := currentActor(cmd, domain.RoleAdmin); err != nil {
		return err
	}

	if err := cityService.Remove(cmd.Context(), id); err != nil {
		var inUse *domain.CityInUseError
		if errors.As(err, &inUse) {
			return fmt.Errorf("city %d cannot be removed: %d request(s) still use it", id, inUse.Requests)
		}
		return fmt.Errorf("failed to remove city: %w", err)
	}
	printSuccess(cmd, "Removed city %d", id)
	return nil
}
