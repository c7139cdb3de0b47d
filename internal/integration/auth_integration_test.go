package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"sonf_backend/internal/repository"
	"sonf_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func freshEmail() string {
	return fmt.Sprintf("auth-%d-%d@example.com", time.Now().UnixNano(), os.Getpid())
}

func cleanupUser(t *testing.T, db *pgxpool.Pool, email string) {
	t.Helper()
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE email = $1`, email)
	})
}

func TestAuth_SignupLoginRefreshLogout(t *testing.T) {
	db := connectDB(t)
	service.InitJWT("it-secret", "it-refresh-secret")
	as := service.NewAuthService(db)

	email := freshEmail()
	cleanupUser(t, db, email)

	user, pair, err := as.Signup(context.Background(), email, "hunter2secret", "Test Miner", "", "")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if pair.Token == "" || pair.RefreshToken == "" {
		t.Fatal("signup returned an incomplete token pair")
	}

	// the wallet is provisioned at signup
	wallets := repository.NewWalletRepository(db)
	if _, err := wallets.GetByUserID(context.Background(), user.ID); err != nil {
		t.Fatalf("wallet after signup: %v", err)
	}

	if _, _, err := as.Signup(context.Background(), email, "hunter2secret", "", "", ""); !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("duplicate signup error = %v, want ErrEmailTaken", err)
	}

	if _, _, err := as.Login(context.Background(), email, "wrong-password"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	_, loginPair, err := as.Login(context.Background(), email, "hunter2secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := as.Refresh(context.Background(), loginPair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Token == "" {
		t.Fatal("refresh returned no access token")
	}

	if err := as.Logout(context.Background(), loginPair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := as.Refresh(context.Background(), loginPair.RefreshToken); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("refresh after logout error = %v, want ErrInvalidToken", err)
	}
}

func TestAuth_SignupWithReferralCode(t *testing.T) {
	db := connectDB(t)
	service.InitJWT("it-secret", "it-refresh-secret")
	as := service.NewAuthService(db)
	rs := service.NewReferralService(db)
	wallets := repository.NewWalletRepository(db)

	referrer := createUser(t, db)
	code, err := rs.Code(context.Background(), referrer.ID)
	if err != nil {
		t.Fatalf("code: %v", err)
	}

	email := freshEmail()
	cleanupUser(t, db, email)
	referee, _, err := as.Signup(context.Background(), email, "hunter2secret", "", "", code)
	if err != nil {
		t.Fatalf("signup with code: %v", err)
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
}
