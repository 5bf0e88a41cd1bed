package sitepanel

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestLoginLimiterBlocksAfterMaxFailures(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	limiter := newLoginLimiter(2, time.Minute, clock.now)
	ip := "203.0.113.10"

	for i := 0; i < 2; i++ {
		if !limiter.Check(ip) {
			t.Fatalf("expected attempt %d to be allowed", i+1)
		}
		limiter.Record(ip)
	}
	if limiter.Check(ip) {
		t.Fatalf("expected third attempt to be blocked")
	}
}

func TestLoginLimiterCheckDoesNotRecord(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	limiter := newLoginLimiter(1, time.Minute, clock.now)
	ip := "203.0.113.11"

	for i := 0; i < 5; i++ {
		if !limiter.Check(ip) {
			t.Fatalf("successful logins must not count against the limit")
		}
	}
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	limiter := newLoginLimiter(1, time.Minute, clock.now)
	ip := "203.0.113.20"

	limiter.Record(ip)
	if limiter.Check(ip) {
		t.Fatalf("expected attempt to be blocked inside the window")
	}

	clock.advance(61 * time.Second)
	if !limiter.Check(ip) {
		t.Fatalf("expected attempt after window to be allowed")
	}
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	limiter := newLoginLimiter(1, time.Minute, clock.now)

	limiter.Record("203.0.113.30")
	if !limiter.Check("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Check("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestLoginLimiterPrune(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	limiter := newLoginLimiter(3, time.Minute, clock.now)
	limiter.Record("203.0.113.40")
	clock.advance(2 * time.Minute)
	limiter.prune()
	if n := len(limiter.attempts); n != 0 {
		t.Fatalf("expected stale entries to be pruned, %d left", n)
	}
}

func TestLoginLimiterStopIsIdempotent(t *testing.T) {
	limiter := NewLoginLimiter(1, time.Hour)
	limiter.Stop()
	limiter.Stop()
}
