package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the outcome of a payment.
type PaymentStatus string

// Payment statuses. Values are the strings stored in the data files.
const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentSuccess   PaymentStatus = "Успех"
	PaymentCancelled PaymentStatus = "Отмена"
)

// String returns the string representation.
func (s PaymentStatus) String() string {
	return string(s)
}

// Label returns an English name for the status.
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "pending"
	case PaymentSuccess:
		return "success"
	case PaymentCancelled:
		return "cancelled"
	default:
		return unknownDescription
	}
}

// Payment records the money paid for a request.
type Payment struct {
	ID               int             `json:"Id"`
	RequestID        int             `json:"RequestId"`
	CardNumberMasked string          `json:"CardNumberMasked"`
	PaymentDate      time.Time       `json:"PaymentDate"`
	Amount           decimal.Decimal `json:"Amount"`
	Status           PaymentStatus   `json:"Status"`
	TransactionID    string          `json:"TransactionId"`
}

// NormaliseCardNumber strips spaces and dashes from a card number.
func NormaliseCardNumber(card string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, card)
}

// ValidCardNumber reports whether card has exactly 16 digits once normalised.
func ValidCardNumber(card string) bool {
	card = NormaliseCardNumber(card)
	if len(card) != 16 {
		return false
	}
	for _, c := range card {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// MaskCardNumber keeps only the last four digits: "**** **** **** 1234".
func MaskCardNumber(card string) string {
	card = NormaliseCardNumber(card)
	last := card
	if len(card) > 4 {
		last = card[len(card)-4:]
	}
	return "**** **** **** " + last
}
