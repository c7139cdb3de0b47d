package domain

import "time"

// Referral links a referrer to a signed-up referee. The (referrer, referee)
// pair is unique; RewardAwarded is true once both wallets received the bonus.
type Referral struct {
	ID            int64     `db:"id" json:"id"`
	ReferrerID    int64     `db:"referrer_id" json:"referrer_id"`
	RefereeID     int64     `db:"referee_id" json:"referee_id"`
	RewardAwarded bool      `db:"reward_awarded" json:"reward_awarded"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ReferralInvite is a pending invite sent to an email address before any
// referee account exists.
type ReferralInvite struct {
	ID           int64     `db:"id" json:"id"`
	ReferrerID   int64     `db:"referrer_id" json:"referrer_id"`
	RefereeEmail string    `db:"referee_email" json:"referee_email"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ReferralEntry is a dashboard history row.
type ReferralEntry struct {
	ID            int64     `db:"id" json:"id"`
	RefereeEmail  string    `db:"referee_email" json:"referee_email"`
	RewardAwarded bool      `db:"reward_awarded" json:"reward_awarded"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type ReferralDashboard struct {
	TotalReferrals int             `json:"total_referrals"`
	TotalRewards   int             `json:"total_rewards"`
	History        []ReferralEntry `json:"history"`
}
