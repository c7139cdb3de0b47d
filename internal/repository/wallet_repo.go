package repository

import (
	"context"
	"errors"

	"sonf_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

const walletColumns = `id, user_id, total_mined, available_coins, migrated_coins, created_at, updated_at`

type WalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.ID, &w.UserID, &w.TotalMined, &w.AvailableCoins, &w.MigratedCoins,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetOrCreate returns the user's wallet, creating a zeroed one on first
// reference. ON CONFLICT DO NOTHING keeps concurrent first calls from
// creating duplicate rows; the loser re-reads the winner's row.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID int64) (*domain.Wallet, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wallets (user_id, total_mined, available_coins, migrated_coins)
		VALUES ($1, 0, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, userID)
}

// GetByUserID returns the wallet or ErrWalletNotFound.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	w, err := scanWallet(r.db.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	return w, err
}

// ApplyDelta atomically adds each delta to the corresponding field and
// returns the post-update row. Wallets are created lazily via GetOrCreate;
// a delta against a missing wallet is ErrWalletNotFound, never an implicit
// create.
func (r *WalletRepository) ApplyDelta(ctx context.Context, userID int64, deltaAvailable, deltaMigrated, deltaTotal decimal.Decimal) (*domain.Wallet, error) {
	return r.applyDelta(ctx, r.db, userID, deltaAvailable, deltaMigrated, deltaTotal)
}

// ApplyDeltaTx is ApplyDelta inside a caller-owned transaction, used by the
// mining, reward and referral services to keep the credit atomic with their
// own writes.
func (r *WalletRepository) ApplyDeltaTx(ctx context.Context, tx pgx.Tx, userID int64, deltaAvailable, deltaMigrated, deltaTotal decimal.Decimal) (*domain.Wallet, error) {
	return r.applyDelta(ctx, tx, userID, deltaAvailable, deltaMigrated, deltaTotal)
}

type execQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *WalletRepository) applyDelta(ctx context.Context, q execQuerier, userID int64, deltaAvailable, deltaMigrated, deltaTotal decimal.Decimal) (*domain.Wallet, error) {
	w, err := scanWallet(q.QueryRow(ctx, `
		UPDATE wallets
		SET available_coins = available_coins + $2,
		    migrated_coins  = migrated_coins + $3,
		    total_mined     = total_mined + $4,
		    updated_at      = NOW()
		WHERE user_id = $1
		RETURNING `+walletColumns,
		userID, deltaAvailable, deltaMigrated, deltaTotal))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	return w, err
}

// SetAbsolute overwrites all three balances. Administrative correction path
// only; the accrual engine never calls this.
func (r *WalletRepository) SetAbsolute(ctx context.Context, userID int64, totalMined, availableCoins, migratedCoins decimal.Decimal) (*domain.Wallet, error) {
	w, err := scanWallet(r.db.QueryRow(ctx, `
		UPDATE wallets
		SET total_mined     = $2,
		    available_coins = $3,
		    migrated_coins  = $4,
		    updated_at      = NOW()
		WHERE user_id = $1
		RETURNING `+walletColumns,
		userID, totalMined, availableCoins, migratedCoins))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	return w, err
}

// Migrate moves amount from available_coins into migrated_coins. The balance
// guard lives in the UPDATE predicate, so an insufficient balance matches no
// row and the wallet stays untouched.
func (r *WalletRepository) Migrate(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	w, err := scanWallet(r.db.QueryRow(ctx, `
		UPDATE wallets
		SET available_coins = available_coins - $2,
		    migrated_coins  = migrated_coins + $2,
		    updated_at      = NOW()
		WHERE user_id = $1 AND available_coins >= $2
		RETURNING `+walletColumns,
		userID, amount))
	if errors.Is(err, pgx.ErrNoRows) {
		// Missing wallet and thin wallet both match nothing; tell them apart.
		if _, lookupErr := r.GetByUserID(ctx, userID); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, ErrInsufficientFunds
	}
	return w, err
}
