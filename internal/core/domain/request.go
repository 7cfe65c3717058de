package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle state of a cleaning request.
// Values are the strings stored in the data files.
type RequestStatus string

// Request lifecycle states.
const (
	StatusNew        RequestStatus = "Новая"
	StatusInProgress RequestStatus = "В работе"
	StatusCompleted  RequestStatus = "Завершена"
	StatusCancelled  RequestStatus = "Отмена"
)

// Valid returns true if the status is one of the lifecycle states.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal returns true for states with no outgoing transitions.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// String returns the string representation.
func (s RequestStatus) String() string {
	return string(s)
}

// Label returns an English name for the status.
func (s RequestStatus) Label() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return unknownDescription
	}
}

// ParseStatus accepts either the persisted value or the English label
// ("new", "in_progress", "in progress", "completed", "cancelled").
func ParseStatus(s string) (RequestStatus, error) {
	switch s {
	case "new":
		return StatusNew, nil
	case "in_progress", "in progress", "in-progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	if st := RequestStatus(s); st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown request status %q", ErrInvalidInput, s)
}

// transitions lists every legal status change.
var transitions = map[RequestStatus][]RequestStatus{
	StatusNew:        {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a *TransitionError for an illegal status change.
func CheckTransition(from, to RequestStatus) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// Request is a client's order for a cleaning.
type Request struct {
	ID     int `json:"Id"`
	UserID int `json:"UserId"`

	Area         decimal.Decimal `json:"Area"`
	CleaningDate time.Time       `json:"CleaningDate"`
	CityID       int             `json:"CityId"`
	District     string          `json:"District"`
	Address      string          `json:"Address"`
	TotalCost    decimal.Decimal `json:"TotalCost"`
	Status       RequestStatus   `json:"Status"`

	// CleanerID is nil until a cleaner takes the request.
	CleanerID *int `json:"CleanerId"`

	// PaymentID is 0 until a payment is recorded.
	PaymentID int       `json:"PaymentId"`
	CreatedAt time.Time `json:"CreatedAt"`
}

// HasCleaner reports whether a cleaner is assigned.
func (r *Request) HasCleaner() bool {
	return r.CleanerID != nil
}

// HasPayment reports whether a payment has been recorded.
func (r *Request) HasPayment() bool {
	return r.PaymentID != 0
}

// AssignCleaner sets the assigned cleaner.
func (r *Request) AssignCleaner(userID int) {
	id := userID
	r.CleanerID = &id
}
