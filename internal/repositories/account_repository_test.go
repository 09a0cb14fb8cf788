package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"tradedesk/internal/config"
	"tradedesk/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	updateStmt = "UPDATE accounts SET bal = bal + ? WHERE acct = ?"
	selectStmt = "SELECT acct, bal FROM accounts WHERE acct = ?"
)

// decimalArg matches a bound decimal regardless of trailing zeros.
type decimalArg string

func (a decimalArg) Match(v driver.Value) bool {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		return false
	}
	got, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return got.Equal(decimal.RequireFromString(string(a)))
}

func newMockDB(t *testing.T) (*gorm.DB, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	return newMockDBWithMatcher(t, sqlmock.QueryMatcherEqual)
}

func newMockDBWithMatcher(t *testing.T, matcher sqlmock.QueryMatcher) (*gorm.DB, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mockDb, mock
}

func TestAccountStore_Execute(t *testing.T) {
	db, _, mock := newMockDB(t)
	store := NewAccountStore(db)

	mock.ExpectExec("UPDATE accounts SET bal = bal + $1 WHERE acct = $2").
		WithArgs(decimalArg("12.50"), "1234567890").
		WillReturnResult(sqlmock.NewResult(0, 1))

	var affected int64
	err := store.WithConn(context.Background(), func(conn AccountConn) error {
		var err error
		affected, err = conn.Execute(context.Background(), updateStmt, decimal.RequireFromString("12.50"), "1234567890")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountStore_ExecuteKeepsInjectionInArguments(t *testing.T) {
	db, _, mock := newMockDB(t)
	store := NewAccountStore(db)

	hostile := "x'; DROP TABLE accounts; --"
	mock.ExpectExec("UPDATE accounts SET bal = bal + $1 WHERE acct = $2").
		WithArgs(decimalArg("1"), hostile).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.WithConn(context.Background(), func(conn AccountConn) error {
		n, err := conn.Execute(context.Background(), updateStmt, decimal.NewFromInt(1), hostile)
		assert.Zero(t, n)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountStore_Query(t *testing.T) {
	db, _, mock := newMockDB(t)
	store := NewAccountStore(db)

	rows := sqlmock.NewRows([]string{"acct", "bal"}).AddRow("1234567890", "12.50")
	mock.ExpectQuery("SELECT acct, bal FROM accounts WHERE acct = $1").
		WithArgs("1234567890").
		WillReturnRows(rows)

	var acct models.Account
	var found int64
	err := store.WithConn(context.Background(), func(conn AccountConn) error {
		var err error
		found, err = conn.Query(context.Background(), &acct, selectStmt, "1234567890")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), found)
	assert.Equal(t, "1234567890", acct.Acct)
	assert.True(t, decimal.RequireFromString("12.50").Equal(acct.Bal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountStore_QueryNoRows(t *testing.T) {
	db, _, mock := newMockDB(t)
	store := NewAccountStore(db)

	mock.ExpectQuery("SELECT acct, bal FROM accounts WHERE acct = $1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"acct", "bal"}))

	var acct models.Account
	err := store.WithConn(context.Background(), func(conn AccountConn) error {
		n, err := conn.Query(context.Background(), &acct, selectStmt, "missing")
		assert.Zero(t, n)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountStore_ReleasesConnectionOnError(t *testing.T) {
	db, sqlDB, mock := newMockDB(t)
	store := NewAccountStore(db)

	mock.ExpectExec("UPDATE accounts SET bal = bal + $1 WHERE acct = $2").
		WithArgs(decimalArg("5"), "1234567890").
		WillReturnError(errors.New("connection reset by peer"))

	err := store.WithConn(context.Background(), func(conn AccountConn) error {
		_, err := conn.Execute(context.Background(), updateStmt, decimal.NewFromInt(5), "1234567890")
		return err
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.Equal(t, 0, sqlDB.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountStore_ReleasesConnectionOnPanic(t *testing.T) {
	db, sqlDB, _ := newMockDB(t)
	store := NewAccountStore(db)

	assert.Panics(t, func() {
		_ = store.WithConn(context.Background(), func(conn AccountConn) error {
			panic("boom")
		})
	})
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}

func TestAccountStore_CanceledContext(t *testing.T) {
	db, _, _ := newMockDB(t)
	store := NewAccountStore(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.WithConn(ctx, func(conn AccountConn) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
}

func TestSeedAccounts(t *testing.T) {
	// gorm generates the column list, so match the shape rather than the exact text.
	db, _, mock := newMockDBWithMatcher(t, sqlmock.QueryMatcherRegexp)

	accounts := []models.Account{
		{Acct: "1234567890", Bal: decimal.RequireFromString("100.00")},
		{Acct: "5555444433", Bal: decimal.Zero},
	}

	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+) ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := SeedAccounts(context.Background(), db, accounts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())

	n, err = SeedAccounts(context.Background(), db, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		Name:     "tradedesk",
		SSLMode:  "disable",
	})
	assert.Equal(t, "host=db user=app password=secret dbname=tradedesk port=5432 sslmode=disable", dsn)
}
