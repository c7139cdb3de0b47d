package service

import (
	"context"
	"errors"
	"testing"
)

// Validation failures must reject before any repository access, so a service
// with no live pool behind it is enough here.
func TestReferralInvite_Validation(t *testing.T) {
	s := NewReferralService(nil)

	if _, err := s.Invite(context.Background(), 1, "me@example.com", ""); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("empty email error = %v, want ErrEmailRequired", err)
	}
	if _, err := s.Invite(context.Background(), 1, "me@example.com", "   "); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("blank email error = %v, want ErrEmailRequired", err)
	}
	if _, err := s.Invite(context.Background(), 1, "me@example.com", "me@example.com"); !errors.Is(err, ErrSelfReferral) {
		t.Fatalf("self email error = %v, want ErrSelfReferral", err)
	}
	if _, err := s.Invite(context.Background(), 1, "me@example.com", "ME@Example.COM"); !errors.Is(err, ErrSelfReferral) {
		t.Fatalf("self email with different case error = %v, want ErrSelfReferral", err)
	}
}

func TestReferralLink_EmptyCodeIsNoOp(t *testing.T) {
	s := NewReferralService(nil)
	if err := s.Link(context.Background(), 1, ""); err != nil {
		t.Fatalf("empty code should be a no-op, got %v", err)
	}
}
