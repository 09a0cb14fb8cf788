package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a balance row keyed by an opaque account identifier.
type Account struct {
	Acct      string          `gorm:"column:acct;primaryKey;size:64" json:"-"`
	Bal       decimal.Decimal `gorm:"column:bal;type:numeric(20,2);not null" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}
