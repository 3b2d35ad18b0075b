package pricing

import "github.com/shopspring/decimal"

// TaxRate is the flat sales tax applied to every order.
var TaxRate = decimal.RequireFromString("0.08")

// Round rounds to cents, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Tax returns the tax owed on a subtotal.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Mul(TaxRate))
}

// GrandTotal is subtotal plus tax, both rounded to cents first.
func GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	subtotal = Round(subtotal)
	return Round(subtotal.Add(Tax(subtotal)))
}

// Summary is the totals block shown under the cart and on receipts.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func Summarize(subtotal decimal.Decimal) Summary {
	subtotal = Round(subtotal)
	return Summary{
		Subtotal: subtotal,
		Tax:      Tax(subtotal),
		Total:    GrandTotal(subtotal),
	}
}

// Cents converts an amount into integer minor units for storage.
func Cents(amount decimal.Decimal) int64 {
	return Round(amount).Shift(2).IntPart()
}

// FromCents is the inverse of Cents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
