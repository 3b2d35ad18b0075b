package checkout

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"tableorder/internal/order"
)

type Code string

const (
	EmptyField        Code = "EmptyField"
	InvalidFormat     Code = "InvalidFormat"
	InvalidCardNumber Code = "InvalidCardNumber"
	InvalidExpiry     Code = "InvalidExpiry"
	InvalidCvv        Code = "InvalidCvv"
)

// ValidationError is a checkout form problem the guest can fix.
type ValidationError struct {
	Code    Code   `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(code Code, field, msg string) error {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// IsValidation separates form problems from infrastructure failures.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

type Request struct {
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	Phone               string              `json:"phone"`
	PaymentMethod       order.PaymentMethod `json:"payment_method"`
	CardNumber          string              `json:"card_number"`
	Expiry              string              `json:"expiry_date"`
	CVV                 string              `json:"cvv"`
	SpecialInstructions string              `json:"special_instructions"`
}

// Validate reports the first rule the request breaks, or nil.
func Validate(req Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return invalid(EmptyField, "name", "Please enter your name")
	}
	if !strings.Contains(req.Email, "@") {
		return invalid(InvalidFormat, "email", "Please enter a valid email")
	}
	if !req.PaymentMethod.Valid() {
		return invalid(InvalidFormat, "payment_method", "Please choose card, cash or mobile payment")
	}
	if req.PaymentMethod != order.PaymentCard {
		return nil
	}

	if digits := stripSpaces(req.CardNumber); len(digits) != 16 || !allDigits(digits) {
		return invalid(InvalidCardNumber, "card_number", "Please enter a valid 16-digit card number")
	}
	if !strings.Contains(req.Expiry, "/") {
		return invalid(InvalidExpiry, "expiry_date", "Please enter a valid expiry date (MM/YY)")
	}
	if strings.TrimSpace(req.CVV) == "" || utf8.RuneCountInString(req.CVV) < 3 {
		return invalid(InvalidCvv, "cvv", "Please enter a valid CVV")
	}
	return nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
