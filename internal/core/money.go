// Package core holds the ledger's domain types: calendar dates, money,
// transactions, budgets and recurring rules.
package core

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in integer cents. Arithmetic happens on cents;
// decimal strings only appear at serialization boundaries (forms, CSV,
// JSON) where ParseMoney and String convert exactly.
type Money struct {
	Cents int64
}

// ParseMoney converts a decimal string to Money with half-up rounding on
// the third decimal place. Both "12.34" and "12,34" separators are
// accepted. Negative amounts are rejected.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(normalizeDecimal(s))
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// MoneyFromCents wraps a cent count.
func MoneyFromCents(cents int64) Money {
	return Money{Cents: cents}
}

// Decimal returns the amount as an exact decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with two decimal places, e.g. "12.34".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

func normalizeDecimal(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ',':
			out = append(out, '.')
		case ' ', '\t':
			// tolerate stray whitespace from form input
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
