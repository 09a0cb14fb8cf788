package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/models"
	"tradedesk/internal/money"
	"tradedesk/internal/repositories"
	"tradedesk/internal/repositories/cache"
	"tradedesk/internal/utils"

	"github.com/shopspring/decimal"
)

type service struct {
	store        repositories.AccountStore
	cache        repositories.BalanceCache
	fingerprints *utils.Fingerprinter
	config       Config
	logger       *slog.Logger
	metrics      MetricsCollector
}

// NewService creates a new balance service
func NewService(
	store repositories.AccountStore,
	balanceCache repositories.BalanceCache,
	fingerprints *utils.Fingerprinter,
	config Config,
	logger *slog.Logger,
	metrics MetricsCollector,
) Service {
	if store == nil {
		panic("store is required")
	}

	if balanceCache == nil {
		balanceCache = cache.NoopCache{}
	}
	if fingerprints == nil {
		fingerprints = utils.NewFingerprinter("")
	}
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = DefaultStoreTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		store:        store,
		cache:        balanceCache,
		fingerprints: fingerprints,
		config:       config,
		logger:       logger.With("component", "balance"),
		metrics:      metrics,
	}
}

func (s *service) UpdateBalance(ctx context.Context, account string, delta decimal.Decimal) (err error) {
	defer s.observe(opUpdateBalance, time.Now(), &err)

	if err := validateAccount(account); err != nil {
		return err
	}
	if err := money.CheckRange(delta); err != nil {
		return err
	}
	if err := money.RequireScale(delta, BalanceScale); err != nil {
		return err
	}

	masked := utils.MaskAccount(account)
	ref := s.fingerprints.MustFingerprint(account)
	log := s.logger.With("account", masked, "account_ref", ref)
	log.InfoContext(ctx, "updating balance", "delta", delta.StringFixed(BalanceScale))

	ctx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	var affected int64
	err = s.store.WithConn(ctx, func(conn repositories.AccountConn) error {
		var execErr error
		affected, execErr = conn.Execute(ctx, updateBalanceStmt, delta, account)
		return execErr
	})
	if err != nil {
		serr := classifyStoreError(ctx, err).With("account", masked)
		log.ErrorContext(ctx, "balance update failed", "code", serr.Code, "error", serr.Err)
		return serr
	}

	if affected == 0 {
		log.WarnContext(ctx, "balance update matched no account")
		return apperrors.ErrAccountNotFound.With("account", masked)
	}

	if err := s.cache.InvalidateBalance(ctx, ref); err != nil {
		log.WarnContext(ctx, "failed to invalidate cached balance", "error", err)
	}

	log.InfoContext(ctx, "balance updated")
	return nil
}

func (s *service) GetBalance(ctx context.Context, account string) (bal decimal.Decimal, err error) {
	defer s.observe(opGetBalance, time.Now(), &err)

	if err := validateAccount(account); err != nil {
		return decimal.Zero, err
	}

	masked := utils.MaskAccount(account)
	ref := s.fingerprints.MustFingerprint(account)
	log := s.logger.With("account", masked, "account_ref", ref)

	// The generation is read before the store so a fill that races an
	// update is written under a generation readers have moved past.
	gen, genErr := s.cache.Generation(ctx, ref)
	if genErr != nil {
		log.WarnContext(ctx, "failed to read cache generation", "error", genErr)
	} else {
		cached, found, err := s.cache.GetBalance(ctx, ref, gen)
		switch {
		case err != nil:
			log.WarnContext(ctx, "failed to read cached balance", "error", err)
		case found:
			s.metrics.RecordCacheHit(opGetBalance)
			return cached, nil
		default:
			s.metrics.RecordCacheMiss(opGetBalance)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	var row models.Account
	var rows int64
	err = s.store.WithConn(ctx, func(conn repositories.AccountConn) error {
		var queryErr error
		rows, queryErr = conn.Query(ctx, &row, selectBalanceStmt, account)
		return queryErr
	})
	if err != nil {
		serr := classifyStoreError(ctx, err).With("account", masked)
		log.ErrorContext(ctx, "balance lookup failed", "code", serr.Code, "error", serr.Err)
		return decimal.Zero, serr
	}
	if rows == 0 {
		return decimal.Zero, apperrors.ErrAccountNotFound.With("account", masked)
	}

	if genErr == nil {
		if err := s.cache.SetBalance(ctx, ref, gen, row.Bal); err != nil {
			log.WarnContext(ctx, "failed to cache balance", "error", err)
		}
	}
	return row.Bal, nil
}

// Helper methods

func (s *service) observe(op string, start time.Time, errp *error) {
	s.metrics.RecordOperationDuration(op, time.Since(start))
	result := "success"
	if *errp != nil {
		result = apperrors.KindOf(*errp).String()
	}
	s.metrics.RecordOperationResult(op, result)
}

func validateAccount(account string) error {
	if strings.TrimSpace(account) == "" {
		return apperrors.ErrAccountRequired
	}
	if utf8.RuneCountInString(account) > MaxAccountLength {
		return apperrors.ErrAccountTooLong
	}
	return nil
}

// classifyStoreError maps a store failure to a StoreError. Driver text can
// echo bound values, so the cause is kept for errors.Is but only a summary
// of it is ever rendered. The masked account goes in the error context.
func classifyStoreError(ctx context.Context, err error) *apperrors.DomainError {
	base := apperrors.ErrStoreUnavailable
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		base = apperrors.ErrStoreTimeout
	}
	return base.Wrap(&storeCause{cause: err})
}

type storeCause struct {
	cause error
}

func (e *storeCause) Error() string {
	switch {
	case errors.Is(e.cause, context.DeadlineExceeded):
		return context.DeadlineExceeded.Error()
	case errors.Is(e.cause, context.Canceled):
		return context.Canceled.Error()
	}
	var coded interface{ SQLState() string }
	if errors.As(e.cause, &coded) {
		return "sqlstate " + coded.SQLState()
	}
	return fmt.Sprintf("driver error (%T)", e.cause)
}

func (e *storeCause) Unwrap() error { return e.cause }
