package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceCache stores balances keyed by account fingerprint, never by the
// raw identifier.
//
// Entries are versioned by a per-account generation. Readers fetch the
// generation before reading the store and fill only that generation, while
// InvalidateBalance advances it, so a fill that raced an update lands in a
// generation nobody reads any more.
type BalanceCache interface {
	Generation(ctx context.Context, ref string) (int64, error)
	GetBalance(ctx context.Context, ref string, gen int64) (decimal.Decimal, bool, error)
	SetBalance(ctx context.Context, ref string, gen int64, balance decimal.Decimal) error
	InvalidateBalance(ctx context.Context, ref string) error
	Ping(ctx context.Context) error
}
