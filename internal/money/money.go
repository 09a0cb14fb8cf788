// Package money converts caller input into exact decimal amounts.
//
// Amounts are major currency units (e.g. dollars) with a fractional part.
// Values never pass through binary floating point once parsed.
package money

import (
	"math"
	"strings"

	apperrors "tradedesk/internal/errors"

	"github.com/shopspring/decimal"
)

const (
	// MaxIntegerDigits bounds |amount| < 10^18, which fits NUMERIC(20,2).
	MaxIntegerDigits = 18
	// MaxScale bounds the number of fractional digits accepted on input.
	MaxScale = 18

	maxInputLen = 64
)

// Parse converts a decimal string such as "1000.00" into an exact amount.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, apperrors.ErrAmountRequired
	}
	if len(s) > maxInputLen {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	if err := CheckRange(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// FromFloat converts f through its shortest decimal representation, so
// 0.1 becomes exactly 0.1 rather than its binary expansion.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, apperrors.ErrNonFinite
	}
	d := decimal.NewFromFloat(f)
	if err := CheckRange(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// CheckRange rejects values whose magnitude or scale the store cannot hold.
// It inspects digits and exponent only, so pathological exponents are
// rejected without being expanded.
func CheckRange(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	if d.Exponent() < -(MaxScale + maxInputLen) {
		return apperrors.ErrAmountPrecision
	}
	if d.Exponent() < -MaxScale {
		// Trailing zeros are harmless; only real fractional digits count.
		if !d.Equal(d.Truncate(MaxScale)) {
			return apperrors.ErrAmountPrecision
		}
	}
	digits := len(d.Coefficient().String())
	if d.IsNegative() {
		digits--
	}
	if int64(digits)+int64(d.Exponent()) > MaxIntegerDigits {
		return apperrors.ErrAmountRange
	}
	return nil
}

// RequireNonNegative rejects negative amounts.
func RequireNonNegative(d decimal.Decimal) error {
	if d.IsNegative() {
		return apperrors.ErrNegativeAmount
	}
	return nil
}

// RequireScale rejects amounts with more than places significant
// fractional digits. "12.500" passes at scale 2; "12.505" does not.
func RequireScale(d decimal.Decimal, places int32) error {
	if !d.Equal(d.Truncate(places)) {
		return apperrors.ErrTooManyDecimal
	}
	return nil
}
