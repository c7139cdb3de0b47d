package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the per-user coin ledger. All amounts are NUMERIC(20,4) in the
// database; available_coins never goes below zero.
type Wallet struct {
	ID             int64           `db:"id" json:"id"`
	UserID         int64           `db:"user_id" json:"user_id"`
	TotalMined     decimal.Decimal `db:"total_mined" json:"total_mined"`
	AvailableCoins decimal.Decimal `db:"available_coins" json:"available_coins"`
	MigratedCoins  decimal.Decimal `db:"migrated_coins" json:"migrated_coins"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}
