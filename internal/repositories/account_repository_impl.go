package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type accountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) AccountStore {
	return &accountStore{
		db: db,
	}
}

// WithConn pins one *sql.Conn for the duration of fn. gorm closes it
// with a deferred Close, so it is returned to the pool even when fn
// fails or panics.
func (s *accountStore) WithConn(ctx context.Context, fn func(conn AccountConn) error) error {
	return s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return fn(&accountConn{tx: tx})
	})
}

func (s *accountStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

type accountConn struct {
	tx *gorm.DB
}

func (c *accountConn) Execute(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result := c.tx.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (c *accountConn) Query(ctx context.Context, dest interface{}, query string, args ...interface{}) (int64, error) {
	result := c.tx.WithContext(ctx).Raw(query, args...).Scan(dest)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
