package service

import (
	"context"
	"errors"
	"strings"

	"sonf_backend/internal/domain"
	"sonf_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrSelfReferral   = errors.New("you cannot refer yourself")
	ErrAlreadyInvited = errors.New("you have already referred this user")
	ErrEmailRequired  = errors.New("referral email is required")
)

var referralBonus = decimal.NewFromInt(1)

// ReferralService links referrers to referees and pays the one-time bonus to
// both sides at signup.
type ReferralService struct {
	db            *pgxpool.Pool
	referrals     *repository.ReferralRepository
	wallets       *repository.WalletRepository
	notifications *repository.NotificationRepository
}

func NewReferralService(db *pgxpool.Pool) *ReferralService {
	return &ReferralService{
		db:            db,
		referrals:     repository.NewReferralRepository(db),
		wallets:       repository.NewWalletRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
}

// Invite records a pending invite to an email address. Self-referral is
// caught by comparing emails, not IDs: at invite time the referee may have
// no account yet, so the referrer's own email is the only identity to check
// against. Nothing is persisted when validation fails.
func (s *ReferralService) Invite(ctx context.Context, referrerID int64, referrerEmail, refereeEmail string) (*domain.ReferralInvite, error) {
	refereeEmail = strings.TrimSpace(refereeEmail)
	if refereeEmail == "" {
		return nil, ErrEmailRequired
	}
	if strings.EqualFold(refereeEmail, referrerEmail) {
		return nil, ErrSelfReferral
	}

	exists, err := s.referrals.InviteExists(ctx, referrerID, refereeEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInvited
	}

	inv, err := s.referrals.CreateInvite(ctx, referrerID, refereeEmail)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyInvited
		}
		return nil, err
	}
	return inv, nil
}

// Link resolves a referral code at signup and, when it matches a referrer,
// pays +1 available coin to both wallets and records the referral in one
// transaction, so a crash cannot leave a half-rewarded pair. An unknown
// code is a silent no-op: the signup proceeds without a bonus.
func (s *ReferralService) Link(ctx context.Context, refereeID int64, code string) error {
	if code == "" {
		return nil
	}

	referrerID, err := s.referrals.GetUserIDByCode(ctx, code)
	if err != nil {
		return err
	}
	if referrerID == 0 || referrerID == refereeID {
		return nil
	}

	// Both wallets must exist before the deltas; creation is lazy.
	if _, err := s.wallets.GetOrCreate(ctx, referrerID); err != nil {
		return err
	}
	if _, err := s.wallets.GetOrCreate(ctx, refereeID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted, err := s.referrals.CreateTx(ctx, tx, referrerID, refereeID, true)
	if err != nil {
		return err
	}
	if !inserted {
		// pair already linked; no second bonus
		return tx.Commit(ctx)
	}

	if _, err := s.wallets.ApplyDeltaTx(ctx, tx, referrerID, referralBonus, decimal.Zero, decimal.Zero); err != nil {
		return err
	}
	if _, err := s.wallets.ApplyDeltaTx(ctx, tx, refereeID, referralBonus, decimal.Zero, decimal.Zero); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	ReferralBonuses.Inc()

	_ = s.notifications.Create(ctx, referrerID,
		"Referral bonus", "Someone signed up with your code. +1 coin.")

	return nil
}

// Code returns the user's referral code, creating one on first use.
func (s *ReferralService) Code(ctx context.Context, userID int64) (string, error) {
	return s.referrals.GetOrCreateCode(ctx, userID)
}

// Dashboard aggregates referral stats and history for a referrer.
func (s *ReferralService) Dashboard(ctx context.Context, referrerID int64) (*domain.ReferralDashboard, error) {
	total, err := s.referrals.CountReferrals(ctx, referrerID)
	if err != nil {
		return nil, err
	}
	rewarded, err := s.referrals.CountRewardedReferrals(ctx, referrerID)
	if err != nil {
		return nil, err
	}
	history, err := s.referrals.ListByReferrer(ctx, referrerID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []domain.ReferralEntry{}
	}

	return &domain.ReferralDashboard{
		TotalReferrals: total,
		TotalRewards:   rewarded,
		History:        history,
	}, nil
}

// History lists the referrer's referral rows.
func (s *ReferralService) History(ctx context.Context, referrerID int64) ([]domain.ReferralEntry, error) {
	return s.referrals.ListByReferrer(ctx, referrerID)
}
