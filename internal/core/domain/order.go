package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Order is a client's input for placing a cleaning request.
type Order struct {
	Area         decimal.Decimal
	CleaningDate time.Time
	CityID       int
	District     string
	Address      string
	ServiceIDs   []int
	CardNumber   string
}

// Validate checks the fields that need no store lookup.
func (o *Order) Validate() error {
	switch {
	case !o.Area.IsPositive():
		return fmt.Errorf("%w: area must be greater than zero", ErrInvalidInput)
	case len(o.ServiceIDs) == 0:
		return fmt.Errorf("%w: select at least one service", ErrInvalidInput)
	case o.CleaningDate.IsZero():
		return fmt.Errorf("%w: cleaning date is required", ErrInvalidInput)
	case o.CityID <= 0:
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	case strings.TrimSpace(o.District) == "":
		return fmt.Errorf("%w: district is required", ErrInvalidInput)
	case strings.TrimSpace(o.Address) == "":
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	case !ValidCardNumber(o.CardNumber):
		return fmt.Errorf("%w: card number must have 16 digits", ErrInvalidInput)
	}
	return nil
}

// Registration is the input of a new account.
type Registration struct {
	LastName        string
	FirstName       string
	MiddleName      string
	Login           string
	Password        string
	ConfirmPassword string
}

// Validate reports every problem at once, joined into one error.
func (r *Registration) Validate() error {
	var problems []string
	if strings.TrimSpace(r.LastName) == "" {
		problems = append(problems, "last name is required")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		problems = append(problems, "first name is required")
	}
	if strings.TrimSpace(r.Login) == "" {
		problems = append(problems, "login is required")
	}
	if r.Password != r.ConfirmPassword {
		problems = append(problems, "passwords do not match")
	}
	if len(r.Password) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf("password must have at least %d characters", MinPasswordLength))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// User builds the account with trimmed names and the given role.
func (r *Registration) User(role Role, now time.Time) User {
	u := User{
		LastName:  strings.TrimSpace(r.LastName),
		FirstName: strings.TrimSpace(r.FirstName),
		Login:     strings.TrimSpace(r.Login),
		Password:  r.Password,
		Role:      role,
		CreatedAt: now,
	}
	if m := strings.TrimSpace(r.MiddleName); m != "" {
		u.MiddleName = &m
	}
	return u
}

// RequestDetails is a request with its related records resolved.
// Missing relations stay nil.
type RequestDetails struct {
	Request  Request
	Client   *User
	Cleaner  *User
	City     *City
	Services []Service
	Payment  *Payment
}
