package driving

import (
	"context"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

// StatisticsService aggregates completed requests. A nil year covers
// every year.
type StatisticsService interface {
	CompletedOrdersByMonth(ctx context.Context, year *int) ([]domain.MonthlyCount, error)
	EarningsByMonth(ctx context.Context, year *int) ([]domain.MonthlyEarnings, error)
	CleanerLeaderboard(ctx context.Context, year *int) ([]domain.CleanerStat, error)
	Summary(ctx context.Context, year *int) (domain.Summary, error)
}
