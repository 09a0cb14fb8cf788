package repositories

import "context"

// AccountConn is a single pinned store connection. Statements use "?"
// placeholders; every caller-supplied value travels as a bound argument.
type AccountConn interface {
	// Execute runs a parameterized statement and reports rows affected.
	Execute(ctx context.Context, query string, args ...interface{}) (int64, error)
	// Query scans the result of a parameterized query into dest and
	// reports the number of rows scanned.
	Query(ctx context.Context, dest interface{}, query string, args ...interface{}) (int64, error)
}

// AccountStore hands out scoped connections. The connection passed to fn
// is released when fn returns, on every path.
type AccountStore interface {
	WithConn(ctx context.Context, fn func(conn AccountConn) error) error
	Ping(ctx context.Context) error
}
