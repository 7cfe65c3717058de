package domain

import "time"

// Filters are records of optional constraints. A nil field places no
// constraint on that field; present fields are AND-combined. A nil filter
// and a filter with every field nil both match everything.

// RequestFilter constrains a request listing.
type RequestFilter struct {
	// StartDate and EndDate bound the cleaning date, inclusive, by calendar day.
	StartDate *time.Time
	EndDate   *time.Time
	CleanerID *int
	ClientID  *int
	Status    *RequestStatus
	CityID    *int
}

// Matches reports whether the request satisfies every present constraint.
func (f *RequestFilter) Matches(r *Request) bool {
	if f == nil {
		return true
	}
	if !InDateRange(r.CleaningDate, f.StartDate, f.EndDate) {
		return false
	}
	if f.CleanerID != nil && (r.CleanerID == nil || *r.CleanerID != *f.CleanerID) {
		return false
	}
	if f.ClientID != nil && r.UserID != *f.ClientID {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.CityID != nil && r.CityID != *f.CityID {
		return false
	}
	return true
}

// UserFilter constrains a user listing.
type UserFilter struct {
	Role        *Role
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Matches reports whether the user satisfies every present constraint.
func (f *UserFilter) Matches(u *User) bool {
	if f == nil {
		return true
	}
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	return InDateRange(u.CreatedAt, f.CreatedFrom, f.CreatedTo)
}

// PaymentFilter constrains a payment listing.
type PaymentFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *PaymentStatus
	RequestID *int
}

// Matches reports whether the payment satisfies every present constraint.
func (f *PaymentFilter) Matches(p *Payment) bool {
	if f == nil {
		return true
	}
	if !InDateRange(p.PaymentDate, f.StartDate, f.EndDate) {
		return false
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.RequestID != nil && p.RequestID != *f.RequestID {
		return false
	}
	return true
}

// Date returns the calendar day of t, read in t's location, as UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InDateRange compares calendar days only; nil bounds are open.
func InDateRange(t time.Time, from, to *time.Time) bool {
	day := Date(t)
	if from != nil && day.Before(Date(*from)) {
		return false
	}
	if to != nil && day.After(Date(*to)) {
		return false
	}
	return true
}

// YearRange returns January 1st and December 31st of year.
func YearRange(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Ptr returns a pointer to v. Handy for building filters.
func Ptr[T any](v T) *T {
	return &v
}
