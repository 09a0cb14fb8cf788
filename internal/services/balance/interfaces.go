package balance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Service defines the balance operations.
type Service interface {
	UpdateBalance(ctx context.Context, account string, delta decimal.Decimal) error
	GetBalance(ctx context.Context, account string) (decimal.Decimal, error)
}

// Config tunes the service. Zero values fall back to defaults.
type Config struct {
	StoreTimeout time.Duration
}
