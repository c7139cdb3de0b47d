package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MiningSessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mining_sessions_started_total",
			Help: "Mining sessions created",
		},
	)
	MiningSessionsEnded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mining_sessions_ended_total",
			Help: "Mining sessions finalized, by trigger",
		},
		[]string{"reason"}, // "stopped" or "completed"
	)
	RewardsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_rewards_granted_total",
			Help: "One-time engagement rewards paid out, by platform",
		},
		[]string{"platform"},
	)
	ReferralBonuses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "referral_bonuses_total",
			Help: "Referral bonus pairs paid at signup",
		},
	)
	CoinMigrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_migrations_total",
			Help: "Successful available->migrated coin moves",
		},
	)
)

func init() {
	prometheus.MustRegister(
		MiningSessionsStarted,
		MiningSessionsEnded,
		RewardsGranted,
		ReferralBonuses,
		CoinMigrations,
	)
}
