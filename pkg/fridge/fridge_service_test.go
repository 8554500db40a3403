package fridge

import (
	"testing"
	"time"
)

func TestResolveExpirationPrefersExplicitDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	expiration, err := resolveExpiration("2025-07-01", 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expiration == nil || expiration.Format("2006-01-02") != "2025-07-01" {
		t.Fatalf("expected explicit date to win, got %v", expiration)
	}
}

func TestResolveExpirationDerivesFromShelfLife(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	expiration, err := resolveExpiration("", 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expiration == nil || expiration.Format("2006-01-02") != "2025-06-17" {
		t.Fatalf("expected now+7d, got %v", expiration)
	}
}

func TestResolveExpirationNoInputs(t *testing.T) {
	expiration, err := resolveExpiration("", 0, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expiration != nil {
		t.Fatalf("expected nil expiration, got %v", expiration)
	}
}

func TestResolveExpirationRejectsBadDate(t *testing.T) {
	if _, err := resolveExpiration("01-07-2025", 7, time.Now()); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestClampPercent(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{150, 100},
	}
	for _, tc := range cases {
		if got := clampPercent(tc.in); got != tc.want {
			t.Fatalf("clampPercent(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
