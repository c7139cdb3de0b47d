package service

import (
	"context"
	"errors"

	"sonf_backend/internal/domain"
	"sonf_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("valid amount required")

// WalletService is the thin business layer over the wallet store: lazy
// creation on read, validated migration of spendable coins.
type WalletService struct {
	wallets *repository.WalletRepository
}

func NewWalletService(db *pgxpool.Pool) *WalletService {
	return &WalletService{wallets: repository.NewWalletRepository(db)}
}

// Get returns the user's wallet, creating a zeroed one on first access.
func (s *WalletService) Get(ctx context.Context, userID int64) (*domain.Wallet, error) {
	return s.wallets.GetOrCreate(ctx, userID)
}

// Migrate moves amount out of available_coins into migrated_coins. The
// wallet is left byte-for-byte unchanged when the amount is invalid or
// exceeds the available balance.
func (s *WalletService) Migrate(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if _, err := s.wallets.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	wallet, err := s.wallets.Migrate(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	CoinMigrations.Inc()
	return wallet, nil
}
