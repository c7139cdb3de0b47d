package integration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sonf_backend/internal/repository"
	"sonf_backend/internal/service"

	"github.com/shopspring/decimal"
)

func TestReferralCode_StableAcrossCalls(t *testing.T) {
	db := connectDB(t)
	user := createUser(t, db)
	rs := service.NewReferralService(db)

	code1, err := rs.Code(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("first code: %v", err)
	}
	if !strings.HasPrefix(code1, "SONF") {
		t.Fatalf("code %q should start with SONF", code1)
	}
	code2, err := rs.Code(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("second code: %v", err)
	}
	if code1 != code2 {
		t.Fatalf("code changed between calls: %q then %q", code1, code2)
	}
}

func TestReferralLink_PaysBothSidesOnce(t *testing.T) {
	db := connectDB(t)
	referrer := createUser(t, db)
	referee := createUser(t, db)
	rs := service.NewReferralService(db)
	wallets := repository.NewWalletRepository(db)

	code, err := rs.Code(context.Background(), referrer.ID)
	if err != nil {
		t.Fatalf("code: %v", err)
	}

	if err := rs.Link(context.Background(), referee.ID, code); err != nil {
		t.Fatalf("link: %v", err)
	}

	one := decimal.NewFromInt(1)
	for _, id := range []int64{referrer.ID, referee.ID} {
		w, err := wallets.GetByUserID(context.Background(), id)
		if err != nil {
			t.Fatalf("wallet %d: %v", id, err)
		}
		if !w.AvailableCoins.Equal(one) {
			t.Fatalf("wallet %d available = %s, want 1", id, w.AvailableCoins)
		}
	}

	// relinking the same pair must not pay again
	if err := rs.Link(context.Background(), referee.ID, code); err != nil {
		t.Fatalf("second link: %v", err)
	}
	w, err := wallets.GetByUserID(context.Background(), referrer.ID)
	if err != nil {
		t.Fatalf("reload referrer wallet: %v", err)
	}
	if !w.AvailableCoins.Equal(one) {
		t.Fatalf("referrer paid twice: available = %s", w.AvailableCoins)
	}

	dash, err := rs.Dashboard(context.Background(), referrer.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.TotalReferrals != 1 || dash.TotalRewards != 1 {
		t.Fatalf("dashboard = %+v, want 1 referral and 1 reward", dash)
	}
}

func TestReferralLink_OwnCodeIsNoOp(t *testing.T) {
	db := connectDB(t)
	user := createUser(t, db)
	rs := service.NewReferralService(db)
	wallets := repository.NewWalletRepository(db)

	code, err := rs.Code(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("code: %v", err)
	}
	if err := rs.Link(context.Background(), user.ID, code); err != nil {
		t.Fatalf("link with own code: %v", err)
	}
	if err := rs.Link(context.Background(), user.ID, "SONF000000"); err != nil {
		t.Fatalf("link with unknown code: %v", err)
	}

	if _, err := wallets.GetByUserID(context.Background(), user.ID); !errors.Is(err, repository.ErrWalletNotFound) {
		t.Fatalf("no-op links should not create a wallet, err = %v", err)
	}
}

func TestReferralInvite_DuplicateRejected(t *testing.T) {
	db := connectDB(t)
	referrer := createUser(t, db)
	rs := service.NewReferralService(db)

	inv, err := rs.Invite(context.Background(), referrer.ID, referrer.Email, "friend@example.com")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if inv.RefereeEmail != "friend@example.com" {
		t.Fatalf("invite email = %q", inv.RefereeEmail)
	}

	if _, err := rs.Invite(context.Background(), referrer.ID, referrer.Email, "Friend@Example.com"); !errors.Is(err, service.ErrAlreadyInvited) {
		t.Fatalf("duplicate invite error = %v, want ErrAlreadyInvited", err)
	}
}

// The unique index itself must compare emails case-insensitively, so two
// racing inserts that both pass the application check cannot both land.
func TestReferralInvite_DatabaseFenceIsCaseInsensitive(t *testing.T) {
	db := connectDB(t)
	referrer := createUser(t, db)
	repo := repository.NewReferralRepository(db)

	if _, err := repo.CreateInvite(context.Background(), referrer.ID, "friend@example.com"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := repo.CreateInvite(context.Background(), referrer.ID, "FRIEND@Example.com")
	if !repository.IsUniqueViolation(err) {
		t.Fatalf("mixed-case duplicate insert error = %v, want a unique violation", err)
	}
}
