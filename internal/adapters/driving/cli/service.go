package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

var (
	serviceAddPrice   string
	serviceAddPerArea bool
)

var serviceCmd = &cobra.Command{
	Use:         "service",
	Short:       "Manage the service catalog",
	Annotations: needsStorage,
}

var serviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orderable services",
	Args:  cobra.NoArgs,
	RunE:  runServiceList,
}

var serviceAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a service to the catalog (admin)",
	Long: `Adds a service. With --per-area the price is charged per square meter,
otherwise it is a fixed charge per request.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runServiceAdd,
}

var serviceRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a service that no request uses (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceRemove,
}

func init() {
	serviceAddCmd.Flags().StringVar(&serviceAddPrice, "price", "", "price in roubles")
	serviceAddCmd.Flags().BoolVar(&serviceAddPerArea, "per-area", false, "charge the price per square meter")
	_ = serviceAddCmd.MarkFlagRequired("price")

	serviceCmd.AddCommand(serviceListCmd)
	serviceCmd.AddCommand(serviceAddCmd)
	serviceCmd.AddCommand(serviceRemoveCmd)
	rootCmd.AddCommand(serviceCmd)
}

func runServiceList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	services, err := catalogService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}

	rows := make([][]string, 0, len(services))
	for _, s := range services {
		rows = append(rows, []string{strconv.Itoa(s.ID), s.Name, priceLabel(s)})
	}
	printTable(cmd, "Services", []string{"ID", "Name", "Price"}, rows, "The catalog is empty.")
	return nil
}

func priceLabel(s domain.Service) string {
	if s.RequiresArea {
		return s.PricePerSquareMeter.StringFixed(2) + " / m²"
	}
	return s.PricePerSquareMeter.StringFixed(2) + " fixed"
}

func runServiceAdd(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	price, err := parseAmount("price", serviceAddPrice)
	if err != nil {
		return err
	}
	if _, err := currentActor(cmd, domain.RoleAdmin); err != nil {
		return err
	}

	svc, err := catalogService.Add(cmd.Context(), domain.Service{
		Name:                strings.Join(args, " "),
		PricePerSquareMeter: price,
		RequiresArea:        serviceAddPerArea,
	})
	if err != nil {
		return fmt.Errorf("failed to add service: %w", err)
	}
	printSuccess(cmd, "Added service %q (id %d, %s)", svc.Name, svc.ID, priceLabel(*svc))
	return nil
}

func runServiceRemove(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := currentActor(cmd, domain.RoleAdmin); err != nil {
		return err
	}

	if err := catalogService.Remove(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to remove service: %w", err)
	}
	printSuccess(cmd, "Removed service %d", id)
	return nil
}
