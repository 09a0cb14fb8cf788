package balance

import "time"

const (
	// BalanceScale is the number of fractional digits a balance column holds.
	BalanceScale = 2
	// MaxAccountLength bounds identifiers, in characters.
	MaxAccountLength    = 64
	DefaultStoreTimeout = 5 * time.Second
)

// Statements use "?" placeholders only; values are always bound.
const (
	updateBalanceStmt = "UPDATE accounts SET bal = bal + ? WHERE acct = ?"
	selectBalanceStmt = "SELECT acct, bal FROM accounts WHERE acct = ?"
)

// Operation names used for metrics.
const (
	opUpdateBalance = "update_balance"
	opGetBalance    = "get_balance"
)
