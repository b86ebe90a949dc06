package domain

import "github.com/shopspring/decimal"

var zero = decimal.Zero

// hasCents reports whether v fits the numeric(12,2) columns money is stored in.
func hasCents(v decimal.Decimal) bool {
	return v.Equal(v.Round(2))
}

func checkPositiveMoney(p Problems, field string, v decimal.Decimal) {
	p.Check(v.GreaterThan(zero), field, "must be greater than zero")
	p.Check(hasCents(v), field, "must have at most 2 decimal places")
}

func checkNonNegativeMoney(p Problems, field string, v decimal.Decimal) {
	p.Check(!v.IsNegative(), field, "must not be negative")
	p.Check(hasCents(v), field, "must have at most 2 decimal places")
}

func checkLength(p Problems, field, v string, minLen, maxLen int) {
	n := len([]rune(v))
	switch {
	case n < minLen && minLen == 1:
		p.Add(field, "is required")
	case n < minLen:
		p.Add(field, "is too short")
	case maxLen > 0 && n > maxLen:
		p.Add(field, "is too long")
	}
}
