package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MiningSession statuses as reported to clients.
const (
	MiningStatusInactive    = "inactive"
	MiningStatusActive      = "active"
	MiningStatusCompleted   = "completed"
	MiningStatusStopped     = "stopped"
	MiningStatusClaimed     = "claimed"
	MiningStatusNoActive    = "no_active_session"
	MiningStatusNoClaimable = "no_claimable_session"
)

// MiningSession is a time-bounded accrual period. At most one row per user
// has EndedAt == nil. CreditedAt marks the moment the accrued value was paid
// into the wallet; it is stamped at most once per session.
type MiningSession struct {
	ID         int64           `db:"id" json:"id"`
	UserID     int64           `db:"user_id" json:"user_id"`
	StartedAt  time.Time       `db:"started_at" json:"started_at"`
	EndedAt    *time.Time      `db:"ended_at" json:"ended_at,omitempty"`
	TotalMined decimal.Decimal `db:"total_mined" json:"total_mined"`
	CreditedAt *time.Time      `db:"credited_at" json:"credited_at,omitempty"`
}

func (s *MiningSession) Active() bool {
	return s.EndedAt == nil
}

// MiningStatusReport is the result of a status poll.
type MiningStatusReport struct {
	Status         string          `json:"status"`
	ElapsedSeconds int64           `json:"elapsed_seconds"`
	CoinsMined     decimal.Decimal `json:"coins_mined"`
	AutoCredited   bool            `json:"auto_credited"`
	Wallet         *Wallet         `json:"wallet,omitempty"`
}
