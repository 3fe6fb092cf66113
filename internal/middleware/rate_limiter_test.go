package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth request allowed, want rejected")
	}

	// Another IP has its own budget.
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh IP rejected, want allowed")
	}
}

func TestRateLimiter_Remaining(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	if got := rl.Remaining("10.0.0.1"); got != 5 {
		t.Errorf("Remaining() = %d, want 5 before any request", got)
	}

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")
	if got := rl.Remaining("10.0.0.1"); got != 3 {
		t.Errorf("Remaining() = %d, want 3", got)
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	rl.Allow("10.0.0.1")
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request allowed, want rejected")
	}

	rl.Reset()
	if !rl.Allow("10.0.0.1") {
		t.Error("request after Reset() rejected, want allowed")
	}
}
