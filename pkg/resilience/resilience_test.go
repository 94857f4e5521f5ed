package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 1, Burst: 2})
	if !l.Allow() || !l.Allow() {
		t.Fatal("burst tokens should be available")
	}
	if l.Allow() {
		t.Fatal("third immediate call should be limited")
	}
}

func TestLimiter_CallRateLimited(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 0.001, Burst: 1})
	if err := l.Call(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("first call: %v", err)
	}
	err := l.Call(context.Background(), func(context.Context) error { return nil })
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	l := NewLimiter(LimiterOpts{Rate: 0.001, Burst: 1})
	l.Allow() // drain
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Fatal("expected wait to fail on cancelled context")
	}
}

func TestBreaker_TripsAfterThreshold(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 2, Timeout: time.Minute})
	boom := errors.New("boom")
	fail := func(context.Context) error { return boom }

	for i := 0; i < 2; i++ {
		if err := b.Call(context.Background(), fail); !errors.Is(err, boom) {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if b.State() != StateOpen {
		t.Fatalf("expected open, got %v", b.State())
	}
	if err := b.Call(context.Background(), fail); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 1, Timeout: time.Minute})
	clock := time.Now()
	b.now = func() time.Time { return clock }

	_ = b.Call(context.Background(), func(context.Context) error { return errors.New("boom") })
	if b.State() != StateOpen {
		t.Fatalf("expected open, got %v", b.State())
	}

	clock = clock.Add(2 * time.Minute)
	if b.State() != StateHalfOpen {
		t.Fatalf("expected half-open, got %v", b.State())
	}
	if err := b.Call(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("probe call: %v", err)
	}
	if b.State() != StateClosed {
		t.Fatalf("expected closed after probe success, got %v", b.State())
	}
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b := NewBreaker(BreakerOpts{FailThreshold: 2, Timeout: time.Minute})
	boom := errors.New("boom")
	_ = b.Call(context.Background(), func(context.Context) error { return boom })
	_ = b.Call(context.Background(), func(context.Context) error { return nil })
	_ = b.Call(context.Background(), func(context.Context) error { return boom })
	if b.State() != StateClosed {
		t.Fatalf("expected closed, got %v", b.State())
	}
}
