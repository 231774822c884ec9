package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWait_DisabledLimiterNeverBlocks(t *testing.T) {
	limiter := New(0, zerolog.Nop())

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Disabled limiter blocked for %v", elapsed)
	}
}

func TestWait_NilLimiterIsNoop(t *testing.T) {
	var limiter *Limiter
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("Wait on nil limiter failed: %v", err)
	}
}

func TestWait_ThrottlesSustainedRate(t *testing.T) {
	// 50 rps: three requests need at least ~40ms.
	limiter := New(50, zerolog.Nop())

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Expected throttling, three requests took only %v", elapsed)
	}
}

func TestWait_RespectsContextCancellation(t *testing.T) {
	limiter := New(0.1, zerolog.Nop()) // one request per 10s

	// First request consumes the initial token.
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("Expected context error while waiting for next token")
	}
}
