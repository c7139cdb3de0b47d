package service

import (
	"errors"
	"testing"
)

func TestJWT_RoundTrip(t *testing.T) {
	InitJWT("test-secret", "test-refresh-secret")

	token, err := GenerateJWT(42, "miner@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	ident, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if ident.UserID != 42 || ident.Email != "miner@example.com" {
		t.Fatalf("identity = %+v, want user 42 / miner@example.com", ident)
	}
}

func TestJWT_RefreshNotValidAsAccess(t *testing.T) {
	InitJWT("test-secret", "test-refresh-secret")

	refresh, err := GenerateRefreshJWT(42, "miner@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshJWT: %v", err)
	}

	if _, err := ParseJWT(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token, err = %v", err)
	}
	if _, err := ParseRefreshJWT(refresh); err != nil {
		t.Fatalf("ParseRefreshJWT: %v", err)
	}
}

func TestJWT_GarbageRejected(t *testing.T) {
	InitJWT("test-secret", "test-refresh-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseJWT(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("ParseJWT(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}
