package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

var statsYear int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Business statistics over completed requests (admin)",
	Long: `Aggregates completed requests by month of cleaning date.
Use --year to limit the report to one calendar year.`,
	Annotations: needsStorage,
	RunE:        runStatsSummary,
}

var statsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Total completed requests and earnings",
	Args:  cobra.NoArgs,
	RunE:  runStatsSummary,
}

var statsOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Completed requests per month",
	Args:  cobra.NoArgs,
	RunE:  runStatsOrders,
}

var statsEarningsCmd = &cobra.Command{
	Use:   "earnings",
	Short: "Earnings per month",
	Args:  cobra.NoArgs,
	RunE:  runStatsEarnings,
}

var statsCleanersCmd = &cobra.Command{
	Use:   "cleaners",
	Short: "Cleaners ranked by completed requests",
	Args:  cobra.NoArgs,
	RunE:  runStatsCleaners,
}

func init() {
	statsCmd.PersistentFlags().IntVarP(&statsYear, "year", "y", 0, "limit to one year")
	statsCmd.AddCommand(statsSummaryCmd)
	statsCmd.AddCommand(statsOrdersCmd)
	statsCmd.AddCommand(statsEarningsCmd)
	statsCmd.AddCommand(statsCleanersCmd)
	rootCmd.AddCommand(statsCmd)
}

// statsPrelude checks the service and the admin role, and returns the
// year filter.
func statsPrelude(cmd *cobra.Command) (*int, error) {
	if statisticsService == nil {
		return nil, errors.New("statistics service not configured")
	}
	if _, err := currentActor(cmd, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if statsYear == 0 {
		return nil, nil
	}
	return &statsYear, nil
}

func periodTitle(title string, year *int) string {
	if year == nil {
		return title
	}
	return fmt.Sprintf("%s, %d", title, *year)
}

func runStatsSummary(cmd *cobra.Command, _ []string) error {
	year, err := statsPrelude(cmd)
	if err != nil {
		return err
	}
	sum, err := statisticsService.Summary(cmd.Context(), year)
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}

	cmd.Println(titleStyle.Render(periodTitle("Summary", year)))
	cmd.Printf("  Completed requests: %d\n", sum.CompletedRequests)
	cmd.Printf("  Total earnings:     %s\n", sum.TotalEarnings.StringFixed(2))
	return nil
}

func runStatsOrders(cmd *cobra.Command, _ []string) error {
	year, err := statsPrelude(cmd)
	if err != nil {
		return err
	}
	counts, err := statisticsService.CompletedOrdersByMonth(cmd.Context(), year)
	if err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Label(), strconv.Itoa(c.Count)})
	}
	printTable(cmd, periodTitle("Completed orders", year), []string{"Month", "Orders"}, rows, "No completed requests.")
	return nil
}

func runStatsEarnings(cmd *cobra.Command, _ []string) error {
	year, err := statsPrelude(cmd)
	if err != nil {
		return err
	}
	earnings, err := statisticsService.EarningsByMonth(cmd.Context(), year)
	if err != nil {
		return fmt.Errorf("failed to compute earnings: %w", err)
	}

	rows := make([][]string, 0, len(earnings))
	for _, e := range earnings {
		rows = append(rows, []string{e.Label(), e.Total.StringFixed(2)})
	}
	printTable(cmd, periodTitle("Earnings", year), []string{"Month", "Earnings"}, rows, "No completed requests.")
	return nil
}

func runStatsCleaners(cmd *cobra.Command, _ []string) error {
	year, err := statsPrelude(cmd)
	if err != nil {
		return err
	}
	board, err := statisticsService.CleanerLeaderboard(cmd.Context(), year)
	if err != nil {
		return fmt.Errorf("failed to rank cleaners: %w", err)
	}

	rows := make([][]string, 0, len(board))
	for i, s := range board {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.CleanerName, strconv.Itoa(s.Count)})
	}
	printTable(cmd, periodTitle("Cleaners", year), []string{"#", "Cleaner", "Completed"}, rows, "No completed requests.")
	return nil
}
