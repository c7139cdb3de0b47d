package service

import (
	"context"
	"errors"

	"sonf_backend/internal/domain"
	"sonf_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrProofRequired   = errors.New("post link is required for this platform")
)

// GrantResult reports the outcome of an engagement reward claim. A repeat
// claim is not an error: Awarded is simply false and the wallet untouched.
type GrantResult struct {
	Awarded      bool            `json:"awarded"`
	RewardAmount decimal.Decimal `json:"reward_amount,omitempty"`
	Wallet       *domain.Wallet  `json:"wallet,omitempty"`
}

// RewardService pays one-time engagement rewards. The (user, platform)
// unique row is the fence; insert and wallet credit share one transaction so
// a user can never be marked rewarded without payment.
type RewardService struct {
	db            *pgxpool.Pool
	rewards       *repository.RewardRepository
	wallets       *repository.WalletRepository
	notifications *repository.NotificationRepository
}

func NewRewardService(db *pgxpool.Pool) *RewardService {
	return &RewardService{
		db:            db,
		rewards:       repository.NewRewardRepository(db),
		wallets:       repository.NewWalletRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
}

// ValidateGrant checks platform and proof link before any state is touched.
func ValidateGrant(platform, link string) (decimal.Decimal, error) {
	amount, ok := domain.RewardAmount(platform)
	if !ok {
		return decimal.Zero, ErrInvalidPlatform
	}
	if domain.RequiresProof(platform) && link == "" {
		return decimal.Zero, ErrProofRequired
	}
	return amount, nil
}

// Grant pays the reward for a platform at most once per user. Engagement
// rewards raise available_coins only; total_mined tracks mining provenance
// and is left alone.
func (s *RewardService) Grant(ctx context.Context, userID int64, platform, link string) (*GrantResult, error) {
	amount, err := ValidateGrant(platform, link)
	if err != nil {
		return nil, err
	}

	if _, err := s.wallets.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	grant, err := s.rewards.InsertTx(ctx, tx, userID, platform, amount, link)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		// already claimed for this platform
		return &GrantResult{Awarded: false}, tx.Commit(ctx)
	}

	wallet, err := s.wallets.ApplyDeltaTx(ctx, tx, userID, amount, decimal.Zero, decimal.Zero)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	RewardsGranted.WithLabelValues(platform).Inc()

	// Best-effort; a lost notification never rolls back a paid reward.
	_ = s.notifications.Create(ctx, userID,
		"Reward earned", "You earned "+amount.StringFixed(4)+" coins for "+platform+".")

	return &GrantResult{
		Awarded:      true,
		RewardAmount: amount,
		Wallet:       wallet,
	}, nil
}

// History lists the rewards a user has already claimed.
func (s *RewardService) History(ctx context.Context, userID int64) ([]domain.RewardGrant, error) {
	return s.rewards.ListByUser(ctx, userID)
}
