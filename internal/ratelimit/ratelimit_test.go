package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("10.0.0.1") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	rl := New(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Error("first request for key 1 should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request for key 1 should be blocked")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("first request for key 2 should pass")
	}
}

func TestKeyedRateLimiter_Refill(t *testing.T) {
	// 100 rps refills a token within ~10ms.
	rl := New(100, 1)

	if !rl.Allow("key") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("key") {
		t.Fatal("second immediate request should be blocked")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.Allow("key") {
		t.Error("request after refill should pass")
	}
}

func TestKeyedRateLimiter_Wait(t *testing.T) {
	rl := New(1000, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx, "key"); err != nil {
			t.Fatalf("Wait() returned error: %v", err)
		}
	}
}

func TestKeyedRateLimiter_WaitCanceled(t *testing.T) {
	rl := New(0.001, 1)
	rl.Allow("key") // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx, "key"); err == nil {
		t.Error("Wait() should fail when context times out before a token is available")
	}
}

func TestPerMinute(t *testing.T) {
	rl := PerMinute(30, 5)

	passed := 0
	for i := 0; i < 10; i++ {
		if rl.Allow("key") {
			passed++
		}
	}

	if passed != 5 {
		t.Errorf("burst of 5 should allow exactly 5 immediate requests, got %d", passed)
	}
}
