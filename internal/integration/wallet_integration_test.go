package integration

import (
	"context"
	"errors"
	"testing"

	"sonf_backend/internal/repository"
	"sonf_backend/internal/service"

	"github.com/shopspring/decimal"
)

func TestWalletRepository_GetOrCreate_Idempotent(t *testing.T) {
	db := connectDB(t)
	user := createUser(t, db)
	wallets := repository.NewWalletRepository(db)

	w1, err := wallets.GetOrCreate(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	w2, err := wallets.GetOrCreate(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if w1.ID != w2.ID {
		t.Fatalf("GetOrCreate created two wallets: %d and %d", w1.ID, w2.ID)
	}
	if !w1.AvailableCoins.IsZero() || !w1.TotalMined.IsZero() || !w1.MigratedCoins.IsZero() {
		t.Fatalf("fresh wallet not zeroed: %+v", w1)
	}
}

func TestWalletRepository_ApplyDelta_MissingWallet(t *testing.T) {
	db := connectDB(t)
	user := createUser(t, db)
	wallets := repository.NewWalletRepository(db)

	_, err := wallets.ApplyDelta(context.Background(), user.ID,
		decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
	if !errors.Is(err, repository.ErrWalletNotFound) {
		t.Fatalf("delta on missing wallet error = %v, want ErrWalletNotFound", err)
	}
}

func TestWalletMigrate_InsufficientFundsLeavesWalletUntouched(t *testing.T) {
	db := connectDB(t)
	user := createUser(t, db)
	wallets := repository.NewWalletRepository(db)
	ws := service.NewWalletService(db)

	if _, err := wallets.GetOrCreate(context.Background(), user.ID); err != nil {
		t.Fatalf("get or create: %v", err)
	}
	before, err := wallets.ApplyDelta(context.Background(), user.ID,
		decimal.RequireFromString("2.5"), decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	_, err = ws.Migrate(context.Background(), user.ID, decimal.NewFromInt(10))
	if !errors.Is(err, repository.ErrInsufficientFunds) {
		t.Fatalf("migrate beyond balance error = %v, want ErrInsufficientFunds", err)
	}

	after, err := wallets.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("reload wallet: %v", err)
	}
	if !after.AvailableCoins.Equal(before.AvailableCoins) || !after.MigratedCoins.Equal(before.MigratedCoins) {
		t.Fatalf("failed migrate mutated wallet: before %+v after %+v", before, after)
	}
}

func TestWalletMigrate_MovesCoins(t *testing.T) {
	db := connectDB(t)
	user := createUser(t, db)
	wallets := repository.NewWalletRepository(db)
	ws := service.NewWalletService(db)

	if _, err := wallets.GetOrCreate(context.Background(), user.ID); err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if _, err := wallets.ApplyDelta(context.Background(), user.ID,
		decimal.NewFromInt(5), decimal.Zero, decimal.Zero); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	w, err := ws.Migrate(context.Background(), user.ID, decimal.RequireFromString("1.5"))
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !w.AvailableCoins.Equal(decimal.RequireFromString("3.5")) {
		t.Fatalf("available = %s, want 3.5", w.AvailableCoins)
	}
	if !w.MigratedCoins.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("migrated = %s, want 1.5", w.MigratedCoins)
	}

	if _, err := ws.Migrate(context.Background(), user.ID, decimal.Zero); !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("zero amount error = %v, want ErrInvalidAmount", err)
	}
	if _, err := ws.Migrate(context.Background(), user.ID, decimal.NewFromInt(-1)); !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("negative amount error = %v, want ErrInvalidAmount", err)
	}
}
