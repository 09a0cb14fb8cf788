// Package fee computes percentage-based fees on monetary amounts.
package fee

import (
	"fmt"

	"tradedesk/internal/money"

	"github.com/shopspring/decimal"
)

const (
	DefaultRate  = "0.015"
	DefaultScale = 2
)

type Config struct {
	// Rate is the fee fraction, e.g. 0.015 for 1.5%.
	Rate  decimal.Decimal
	Scale int32
}

// ConfigFromStrings builds a Config from raw settings. An empty rate falls
// back to DefaultRate and a non-positive scale to DefaultScale.
func ConfigFromStrings(rate string, scale int) (Config, error) {
	if rate == "" {
		rate = DefaultRate
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return Config{}, fmt.Errorf("invalid fee rate %q: %w", rate, err)
	}
	if r.IsNegative() {
		return Config{}, fmt.Errorf("invalid fee rate %q: must not be negative", rate)
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	return Config{Rate: r, Scale: int32(scale)}, nil
}

// Result is a computed fee and its display form.
type Result struct {
	Fee     decimal.Decimal
	Display string
}

// Calculator is immutable after construction and safe for concurrent use.
type Calculator struct {
	rate  decimal.Decimal
	scale int32
}

// NewCalculator builds a Calculator. A zero rate or scale falls back to the
// defaults; a negative rate panics, since it would produce negative fees.
func NewCalculator(config Config) *Calculator {
	if config.Rate.IsNegative() {
		panic("fee rate must not be negative")
	}
	if config.Rate.IsZero() {
		config.Rate = decimal.RequireFromString(DefaultRate)
	}
	if config.Scale <= 0 {
		config.Scale = DefaultScale
	}
	return &Calculator{
		rate:  config.Rate,
		scale: config.Scale,
	}
}

// Rate returns the configured fee fraction.
func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// ComputeFee returns amount * rate rounded half-up to the configured scale.
func (c *Calculator) ComputeFee(amount decimal.Decimal) (Result, error) {
	if err := money.RequireNonNegative(amount); err != nil {
		return Result{}, err
	}
	if err := money.CheckRange(amount); err != nil {
		return Result{}, err
	}

	// Round is half away from zero, which is half-up for non-negative input.
	fee := amount.Mul(c.rate).Round(c.scale)
	return Result{
		Fee:     fee,
		Display: "Fee=" + fee.StringFixed(c.scale),
	}, nil
}

// ComputeFeeFromString parses s as an exact decimal before computing the fee.
func (c *Calculator) ComputeFeeFromString(s string) (Result, error) {
	amount, err := money.Parse(s)
	if err != nil {
		return Result{}, err
	}
	return c.ComputeFee(amount)
}

// ComputeFeeFromFloat converts f to its shortest decimal form first, so the
// multiplication never sees binary representation error.
func (c *Calculator) ComputeFeeFromFloat(f float64) (Result, error) {
	amount, err := money.FromFloat(f)
	if err != nil {
		return Result{}, err
	}
	return c.ComputeFee(amount)
}
