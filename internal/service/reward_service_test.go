package service

import (
	"errors"
	"testing"

	"sonf_backend/internal/domain"

	"github.com/shopspring/decimal"
)

func TestValidateGrant_Amounts(t *testing.T) {
	cases := []struct {
		platform string
		link     string
		want     string
	}{
		{"telegram", "", "0.5"},
		{"youtube", "", "0.5"},
		{"twitter", "https://x.com/user/status/1", "1"},
		{"instagram", "https://instagram.com/p/abc", "1"},
	}
	for _, tc := range cases {
		amount, err := ValidateGrant(tc.platform, tc.link)
		if err != nil {
			t.Fatalf("ValidateGrant(%q) returned error: %v", tc.platform, err)
		}
		if !amount.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("ValidateGrant(%q) amount = %s, want %s", tc.platform, amount, tc.want)
		}
	}
}

func TestValidateGrant_InvalidPlatform(t *testing.T) {
	for _, platform := range []string{"", "facebook", "TELEGRAM ", "tiktok"} {
		if _, err := ValidateGrant(platform, ""); !errors.Is(err, ErrInvalidPlatform) {
			t.Fatalf("ValidateGrant(%q) error = %v, want ErrInvalidPlatform", platform, err)
		}
	}
}

func TestValidateGrant_ProofRequired(t *testing.T) {
	for _, platform := range []string{"twitter", "instagram"} {
		if _, err := ValidateGrant(platform, ""); !errors.Is(err, ErrProofRequired) {
			t.Fatalf("ValidateGrant(%q, no link) error = %v, want ErrProofRequired", platform, err)
		}
	}
	// follow-style platforms need no proof
	for _, platform := range []string{"telegram", "youtube"} {
		if _, err := ValidateGrant(platform, ""); err != nil {
			t.Fatalf("ValidateGrant(%q, no link) error = %v, want nil", platform, err)
		}
	}
}

func TestRequiresProof(t *testing.T) {
	if domain.RequiresProof("telegram") || domain.RequiresProof("youtube") {
		t.Fatal("follow platforms should not require proof")
	}
	if !domain.RequiresProof("twitter") || !domain.RequiresProof("instagram") {
		t.Fatal("post platforms should require proof")
	}
}
