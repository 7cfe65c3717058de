package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyCount is the number of completed requests in one month.
type MonthlyCount struct {
	Year  int
	Month int
	Count int
}

// Label formats the month as "Jan 2006".
func (m MonthlyCount) Label() string {
	return monthLabel(m.Year, m.Month)
}

// MonthlyEarnings is the total cost of completed requests in one month.
type MonthlyEarnings struct {
	Year  int
	Month int
	Total decimal.Decimal
}

// Label formats the month as "Jan 2006".
func (m MonthlyEarnings) Label() string {
	return monthLabel(m.Year, m.Month)
}

// CleanerStat is the number of completed requests of one cleaner.
type CleanerStat struct {
	CleanerID   int
	CleanerName string
	Count       int
}

// Summary totals completed requests over a period.
type Summary struct {
	CompletedRequests int
	TotalEarnings     decimal.Decimal
}

func monthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return unknownDescription
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
