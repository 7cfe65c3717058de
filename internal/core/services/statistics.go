package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cleaning-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cleaning-cli/internal/logger"
)

// Ensure StatisticsService implements the interface.
var _ driving.StatisticsService = (*StatisticsService)(nil)

// StatisticsService aggregates completed requests for the admin reports.
// Read failures are logged and produce empty results.
type StatisticsService struct {
	requestStore driven.RequestStore
	userStore    driven.UserStore
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(requestStore driven.RequestStore, userStore driven.UserStore) *StatisticsService {
	return &StatisticsService{
		requestStore: requestStore,
		userStore:    userStore,
	}
}

type monthKey struct {
	year, month int
}

func (k monthKey) before(o monthKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	return k.month < o.month
}

func keyOf(r *domain.Request) monthKey {
	return monthKey{year: r.CleaningDate.Year(), month: int(r.CleaningDate.Month())}
}

// completed returns Completed requests, limited to year when set.
func (s *StatisticsService) completed(ctx context.Context, year *int) []domain.Request {
	filter := &domain.RequestFilter{Status: domain.Ptr(domain.StatusCompleted)}
	if year != nil {
		from, to := domain.YearRange(*year)
		filter.StartDate, filter.EndDate = &from, &to
	}
	requests, err := s.requestStore.List(ctx, filter)
	if err != nil {
		logger.Warn("statistics: reading requests: %v", err)
		return nil
	}
	return requests
}

// CompletedOrdersByMonth counts completed requests per month of cleaning
// date, in ascending month order.
func (s *StatisticsService) CompletedOrdersByMonth(ctx context.Context, year *int) ([]domain.MonthlyCount, error) {
	if s.requestStore == nil {
		return nil, domain.ErrNotImplemented
	}

	counts := make(map[monthKey]int)
	for _, r := range s.completed(ctx, year) {
		counts[keyOf(&r)]++
	}

	result := make([]domain.MonthlyCount, 0, len(counts))
	for _, k := range sortedKeys(counts) {
		result = append(result, domain.MonthlyCount{Year: k.year, Month: k.month, Count: counts[k]})
	}
	return result, nil
}

// EarningsByMonth sums the total cost of completed requests per month of
// cleaning date, in ascending month order.
func (s *StatisticsService) EarningsByMonth(ctx context.Context, year *int) ([]domain.MonthlyEarnings, error) {
	if s.requestStore == nil {
		return nil, domain.ErrNotImplemented
	}

	totals := make(map[monthKey]decimal.Decimal)
	for _, r := range s.completed(ctx, year) {
		k := keyOf(&r)
		totals[k] = totals[k].Add(r.TotalCost)
	}

	result := make([]domain.MonthlyEarnings, 0, len(totals))
	for _, k := range sortedKeys(totals) {
		result = append(result, domain.MonthlyEarnings{Year: k.year, Month: k.month, Total: totals[k]})
	}
	return result, nil
}

// CleanerLeaderboard counts completed requests per cleaner, busiest first.
// Only users whose current role is Cleaner are ranked; ties keep the
// order of the user store.
func (s *StatisticsService) CleanerLeaderboard(ctx context.Context, year *int) ([]domain.CleanerStat, error) {
	if s.requestStore == nil || s.userStore == nil {
		return nil, domain.ErrNotImplemented
	}

	counts := make(map[int]int)
	for _, r := range s.completed(ctx, year) {
		if r.HasCleaner() {
			counts[*r.CleanerID]++
		}
	}
	if len(counts) == 0 {
		return []domain.CleanerStat{}, nil
	}

	cleaners, err := s.userStore.List(ctx, &domain.UserFilter{Role: domain.Ptr(domain.RoleCleaner)})
	if err != nil {
		logger.Warn("statistics: reading users: %v", err)
		return []domain.CleanerStat{}, nil
	}

	result := make([]domain.CleanerStat, 0, len(counts))
	for i := range cleaners {
		if n := counts[cleaners[i].ID]; n > 0 {
			result = append(result, domain.CleanerStat{
				CleanerID:   cleaners[i].ID,
				CleanerName: cleaners[i].FullName(),
				Count:       n,
			})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result, nil
}

// Summary totals completed requests and their earnings.
func (s *StatisticsService) Summary(ctx context.Context, year *int) (domain.Summary, error) {
	if s.requestStore == nil {
		return domain.Summary{}, domain.ErrNotImplemented
	}

	sum := domain.Summary{TotalEarnings: decimal.Zero}
	for _, r := range s.completed(ctx, year) {
		sum.CompletedRequests++
		sum.TotalEarnings = sum.TotalEarnings.Add(r.TotalCost)
	}
	return sum, nil
}

func sortedKeys[V any](m map[monthKey]V) []monthKey {
	keys := make([]monthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })
	return keys
}
