// Package cache implements the balance cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	balancePrefix    = "balance:acct:"
	generationPrefix = "balance:gen:"

	DefaultTTL = 5 * time.Minute
	// generationGrace keeps a generation counter alive well past the
	// balances written under it.
	generationGrace = 24 * time.Hour
)

// BalanceService caches balances as decimal strings so no precision is
// lost on the round trip.
type BalanceService struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewBalanceService(client redis.Cmdable, ttl time.Duration) *BalanceService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BalanceService{
		client: client,
		ttl:    ttl,
	}
}

// Key generation
func BalanceKey(ref string, gen int64) string {
	return balancePrefix + ref + ":" + strconv.FormatInt(gen, 10)
}

func GenerationKey(ref string) string {
	return generationPrefix + ref
}

// Generation returns the current generation for ref; 0 if none was recorded.
func (s *BalanceService) Generation(ctx context.Context, ref string) (int64, error) {
	gen, err := s.client.Get(ctx, GenerationKey(ref)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return gen, nil
}

func (s *BalanceService) GetBalance(ctx context.Context, ref string, gen int64) (decimal.Decimal, bool, error) {
	val, err := s.client.Get(ctx, BalanceKey(ref, gen)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to get cached balance: %w", err)
	}

	bal, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to decode cached balance: %w", err)
	}
	return bal, true, nil
}

func (s *BalanceService) SetBalance(ctx context.Context, ref string, gen int64, balance decimal.Decimal) error {
	if err := s.client.Set(ctx, BalanceKey(ref, gen), encodeBalance(balance), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache balance: %w", err)
	}
	return nil
}

// InvalidateBalance advances the generation and drops the entry of the
// previous one.
func (s *BalanceService) InvalidateBalance(ctx context.Context, ref string) error {
	gen, err := s.client.Incr(ctx, GenerationKey(ref)).Result()
	if err != nil {
		return fmt.Errorf("failed to advance cache generation: %w", err)
	}
	if err := s.client.Expire(ctx, GenerationKey(ref), s.ttl+generationGrace).Err(); err != nil {
		return fmt.Errorf("failed to set generation expiry: %w", err)
	}
	if err := s.client.Del(ctx, BalanceKey(ref, gen-1)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate balance: %w", err)
	}
	return nil
}

func (s *BalanceService) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// encodeBalance keeps the scale, so 12.50 is stored as "12.50".
func encodeBalance(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}

// NoopCache is used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Generation(context.Context, string) (int64, error) { return 0, nil }
func (NoopCache) GetBalance(context.Context, string, int64) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}
func (NoopCache) SetBalance(context.Context, string, int64, decimal.Decimal) error { return nil }
func (NoopCache) InvalidateBalance(context.Context, string) error                  { return nil }
func (NoopCache) Ping(context.Context) error                                       { return nil }
