package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Engagement platforms that pay a one-time reward.
const (
	PlatformTelegram  = "telegram"
	PlatformYoutube   = "youtube"
	PlatformTwitter   = "twitter"
	PlatformInstagram = "instagram"
)

// RewardAmount returns the flat payout for a platform and whether the
// platform is known. Twitter and Instagram pay double but require a proof
// link, see RequiresProof.
func RewardAmount(platform string) (decimal.Decimal, bool) {
	switch platform {
	case PlatformTelegram, PlatformYoutube:
		return decimal.NewFromFloat(0.5), true
	case PlatformTwitter, PlatformInstagram:
		return decimal.NewFromInt(1), true
	}
	return decimal.Zero, false
}

// RequiresProof reports whether the platform needs a post/tweet link.
func RequiresProof(platform string) bool {
	return platform == PlatformTwitter || platform == PlatformInstagram
}

// RewardGrant is the uniqueness fence: one row per (user, platform).
type RewardGrant struct {
	ID           int64           `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"user_id"`
	Platform     string          `db:"platform" json:"platform"`
	RewardAmount decimal.Decimal `db:"reward_amount" json:"reward_amount"`
	Link         string          `db:"link" json:"link,omitempty"`
	AwardedAt    time.Time       `db:"awarded_at" json:"awarded_at"`
}
