package integration

import (
	"context"
	"testing"

	"sonf_backend/internal/service"

	"github.com/shopspring/decimal"
)

func TestRewardGrant_AtMostOncePerPlatform(t *testing.T) {
	db := connectDB(t)
	user := createUser(t, db)
	rs := service.NewRewardService(db)

	first, err := rs.Grant(context.Background(), user.ID, "telegram", "")
	if err != nil {
		t.Fatalf("first grant: %v", err)
	}
	if !first.Awarded {
		t.Fatal("first grant should award")
	}
	half := decimal.RequireFromString("0.5")
	if !first.RewardAmount.Equal(half) {
		t.Fatalf("reward = %s, want %s", first.RewardAmount, half)
	}
	if !first.Wallet.AvailableCoins.Equal(half) {
		t.Fatalf("available after grant = %s, want %s", first.Wallet.AvailableCoins, half)
	}
	// engagement rewards never count as mined
	if !first.Wallet.TotalMined.IsZero() {
		t.Fatalf("total mined after grant = %s, want 0", first.Wallet.TotalMined)
	}

	second, err := rs.Grant(context.Background(), user.ID, "telegram", "")
	if err != nil {
		t.Fatalf("second grant: %v", err)
	}
	if second.Awarded {
		t.Fatal("second grant for the same platform should not award")
	}

	// a different platform is an independent grant
	other, err := rs.Grant(context.Background(), user.ID, "twitter", "https://x.com/user/status/1")
	if err != nil {
		t.Fatalf("twitter grant: %v", err)
	}
	if !other.Awarded {
		t.Fatal("twitter grant should award")
	}
	if !other.Wallet.AvailableCoins.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("available after both grants = %s, want 1.5", other.Wallet.AvailableCoins)
	}

	history, err := rs.History(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d grants, want 2", len(history))
	}
}
