package repository

import (
	"strings"
	"testing"
)

func TestGenerateReferralCode_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateReferralCode()
		if len(code) != 10 || !strings.HasPrefix(code, "SONF") {
			t.Fatalf("code %q should be SONF followed by six digits", code)
		}
		for _, c := range code[4:] {
			if c < '0' || c > '9' {
				t.Fatalf("code %q has a non-digit suffix", code)
			}
		}
		if code[4] == '0' {
			t.Fatalf("code %q suffix should not have a leading zero", code)
		}
		seen[code] = true
	}
	// 100 draws from 900000 values colliding down to a handful would mean a
	// broken generator
	if len(seen) < 90 {
		t.Fatalf("only %d distinct codes out of 100", len(seen))
	}
}
