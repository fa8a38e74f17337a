package game

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdownExpiresOnce(t *testing.T) {
	var ticks, expiries int32
	c := StartCountdown(1,
		func(remaining int) { atomic.AddInt32(&ticks, 1) },
		func() { atomic.AddInt32(&expiries, 1) },
	)
	if c.Max() != 1 {
		t.Errorf("Max = %d, want 1", c.Max())
	}

	deadline := time.Now().Add(3 * time.Second)
	for atomic.LoadInt32(&expiries) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&expiries); got != 1 {
		t.Fatalf("expiries = %d, want 1", got)
	}
	// No second callback after expiry.
	time.Sleep(1200 * time.Millisecond)
	if got := atomic.LoadInt32(&expiries); got != 1 {
		t.Fatalf("expiries = %d after settle, want exactly 1", got)
	}
	if atomic.LoadInt32(&ticks) == 0 {
		t.Error("expected at least one tick before expiry")
	}
}

func TestCountdownStopSuppressesExpiry(t *testing.T) {
	var expiries int32
	c := StartCountdown(1, nil, func() { atomic.AddInt32(&expiries, 1) })
	c.Stop()
	c.Stop() // idempotent

	time.Sleep(1500 * time.Millisecond)
	if got := atomic.LoadInt32(&expiries); got != 0 {
		t.Fatalf("expiries = %d after Stop, want 0", got)
	}
}

func TestCountdownNilStop(t *testing.T) {
	var c *Countdown
	c.Stop() // must not panic
}
