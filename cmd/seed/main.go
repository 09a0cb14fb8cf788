// Command seed inserts demo accounts. Accounts are read from SEED_ACCOUNTS as
// a comma separated list of acct:balance pairs; existing accounts are kept.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"tradedesk/internal/config"
	"tradedesk/internal/logger"
	"tradedesk/internal/models"
	"tradedesk/internal/money"
	"tradedesk/internal/repositories"
	"tradedesk/internal/services/balance"
	"tradedesk/internal/utils"
)

const defaultSeedAccounts = "1234567890:100.00,5555444433:0.00"

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	accounts, err := parseSeedAccounts(config.GetEnv("SEED_ACCOUNTS", defaultSeedAccounts))
	if err != nil {
		log.Error("invalid SEED_ACCOUNTS", "error", err)
		os.Exit(1)
	}

	db, err := repositories.Open(cfg.DB)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close database connection", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := repositories.SeedAccounts(ctx, db, accounts)
	if err != nil {
		log.Error("failed to seed accounts", "error", err)
		return
	}

	masked := make([]string, 0, len(accounts))
	for _, a := range accounts {
		masked = append(masked, utils.MaskAccount(a.Acct))
	}
	log.Info("seeded accounts", "requested", len(accounts), "created", created, "accounts", masked)
}

// parseSeedAccounts parses "acct:balance,acct:balance". Errors name the
// entry by position and masked account, never the raw identifier.
func parseSeedAccounts(spec string) ([]models.Account, error) {
	var accounts []models.Account
	seen := make(map[string]bool)

	for i, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		acct, bal, ok := strings.Cut(entry, ":")
		acct = strings.TrimSpace(acct)
		if !ok || acct == "" {
			return nil, fmt.Errorf("entry %d: expected acct:balance", i+1)
		}
		if utf8.RuneCountInString(acct) > balance.MaxAccountLength {
			return nil, fmt.Errorf("entry %d: account too long", i+1)
		}
		if seen[acct] {
			return nil, fmt.Errorf("entry %d: duplicate account %s", i+1, utils.MaskAccount(acct))
		}
		seen[acct] = true

		amount, err := money.Parse(bal)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, utils.MaskAccount(acct), err)
		}
		if err := money.RequireScale(amount, balance.BalanceScale); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, utils.MaskAccount(acct), err)
		}
		accounts = append(accounts, models.Account{Acct: acct, Bal: amount})
	}
	return accounts, nil
}
