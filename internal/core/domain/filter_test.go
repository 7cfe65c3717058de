package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRequestFilter_NilAndEmptyMatchEverything(t *testing.T) {
	r := &Request{ID: 1, Status: StatusNew, CleaningDate: day(2024, 3, 1)}

	var nilFilter *RequestFilter
	assert.True(t, nilFilter.Matches(r))
	assert.True(t, (&RequestFilter{}).Matches(r))
}

func TestRequestFilter_DateRangeIgnoresTimeOfDay(t *testing.T) {
	r := &Request{CleaningDate: time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)}

	f := &RequestFilter{StartDate: Ptr(day(2024, 3, 31)), EndDate: Ptr(day(2024, 3, 31))}
	assert.True(t, f.Matches(r))

	f = &RequestFilter{EndDate: Ptr(time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC))}
	assert.True(t, f.Matches(r), "end bound is inclusive by calendar day")

	f = &RequestFilter{StartDate: Ptr(day(2024, 4, 1))}
	assert.False(t, f.Matches(r))
}

func TestRequestFilter_Fields(t *testing.T) {
	cleaner := 5
	r := &Request{
		UserID:       2,
		CityID:       3,
		CleanerID:    &cleaner,
		Status:       StatusCompleted,
		CleaningDate: day(2024, 6, 10),
	}

	tests := []struct {
		name   string
		filter RequestFilter
		want   bool
	}{
		{"cleaner match", RequestFilter{CleanerID: Ptr(5)}, true},
		{"cleaner mismatch", RequestFilter{CleanerID: Ptr(6)}, false},
		{"client match", RequestFilter{ClientID: Ptr(2)}, true},
		{"client mismatch", RequestFilter{ClientID: Ptr(9)}, false},
		{"status match", RequestFilter{Status: Ptr(StatusCompleted)}, true},
		{"status mismatch", RequestFilter{Status: Ptr(StatusNew)}, false},
		{"city match", RequestFilter{CityID: Ptr(3)}, true},
		{"city mismatch", RequestFilter{CityID: Ptr(4)}, false},
		{"all match", RequestFilter{CleanerID: Ptr(5), ClientID: Ptr(2), Status: Ptr(StatusCompleted), CityID: Ptr(3)}, true},
		{"one mismatch fails all", RequestFilter{CleanerID: Ptr(5), ClientID: Ptr(2), CityID: Ptr(4)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(r))
		})
	}
}

func TestRequestFilter_CleanerOnUnassignedRequest(t *testing.T) {
	r := &Request{}
	assert.False(t, (&RequestFilter{CleanerID: Ptr(1)}).Matches(r))
}

func TestRequestFilter_CombinedEqualsIntersection(t *testing.T) {
	requests := []Request{
		{ID: 1, Status: StatusCompleted, CleaningDate: day(2024, 3, 5)},
		{ID: 2, Status: StatusNew, CleaningDate: day(2024, 3, 6)},
		{ID: 3, Status: StatusCompleted, CleaningDate: day(2024, 7, 1)},
		{ID: 4, Status: StatusCancelled, CleaningDate: day(2023, 3, 5)},
	}
	status := &RequestFilter{Status: Ptr(StatusCompleted)}
	dates := &RequestFilter{StartDate: Ptr(day(2024, 1, 1)), EndDate: Ptr(day(2024, 3, 31))}
	both := &RequestFilter{Status: Ptr(StatusCompleted), StartDate: Ptr(day(2024, 1, 1)), EndDate: Ptr(day(2024, 3, 31))}

	for i := range requests {
		r := &requests[i]
		assert.Equal(t, status.Matches(r) && dates.Matches(r), both.Matches(r), "request %d", r.ID)
	}
}

func TestUserFilter(t *testing.T) {
	u := &User{Role: RoleCleaner, CreatedAt: time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC)}

	assert.True(t, (*UserFilter)(nil).Matches(u))
	assert.True(t, (&UserFilter{Role: Ptr(RoleCleaner)}).Matches(u))
	assert.False(t, (&UserFilter{Role: Ptr(RoleAdmin)}).Matches(u))
	assert.True(t, (&UserFilter{CreatedFrom: Ptr(day(2024, 2, 10)), CreatedTo: Ptr(day(2024, 2, 10))}).Matches(u))
	assert.False(t, (&UserFilter{CreatedTo: Ptr(day(2024, 2, 9))}).Matches(u))
}

func TestPaymentFilter(t *testing.T) {
	p := &Payment{RequestID: 4, Status: PaymentSuccess, PaymentDate: day(2024, 5, 20)}

	assert.True(t, (*PaymentFilter)(nil).Matches(p))
	assert.True(t, (&PaymentFilter{RequestID: Ptr(4)}).Matches(p))
	assert.False(t, (&PaymentFilter{RequestID: Ptr(5)}).Matches(p))
	assert.True(t, (&PaymentFilter{Status: Ptr(PaymentSuccess)}).Matches(p))
	assert.False(t, (&PaymentFilter{Status: Ptr(PaymentCancelled)}).Matches(p))
	assert.False(t, (&PaymentFilter{StartDate: Ptr(day(2024, 5, 21))}).Matches(p))
}

func TestYearRange(t *testing.T) {
	from, to := YearRange(2024)
	assert.Equal(t, day(2024, 1, 1), from)
	assert.Equal(t, day(2024, 12, 31), to)
}

func TestFilters_EmptyPresentValueMatchesExactly(t *testing.T) {
	r := &Request{Status: StatusNew}
	assert.False(t, (&RequestFilter{Status: Ptr(RequestStatus(""))}).Matches(r))
	assert.True(t, (&RequestFilter{Status: Ptr(RequestStatus(""))}).Matches(&Request{}))

	assert.False(t, (&UserFilter{Role: Ptr(Role(""))}).Matches(&User{Role: RoleClient}))
	assert.False(t, (&PaymentFilter{Status: Ptr(PaymentStatus(""))}).Matches(&Payment{Status: PaymentSuccess}))
}
