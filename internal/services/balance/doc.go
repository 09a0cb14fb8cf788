/*
Package balance applies signed deltas to account balances through an
external account store.

Usage:

	svc := balance.NewService(store, cache, fingerprints, balance.Config{}, logger, nil)

	// Apply a delta
	err := svc.UpdateBalance(ctx, "1234567890", decimal.RequireFromString("-12.50"))

	// Read a balance
	bal, err := svc.GetBalance(ctx, "1234567890")

Amounts are major currency units with at most two fractional digits.

Account identifiers are never logged. Log records and error context carry
the masked form ("****7890") and a keyed fingerprint instead; the
fingerprint also keys the balance cache.

Every statement sent to the store uses bound parameters. Each call pins
its own connection through AccountStore.WithConn, which releases it on
every exit path, and is bounded by Config.StoreTimeout.

Error Handling:

  - errors.KindInvalidArgument: empty or oversized account, bad delta scale
  - errors.KindPrecision: delta outside the storable range
  - errors.KindNotFound: no row matched the account
  - errors.KindStore: store failure or timeout; never retried here
*/
package balance
