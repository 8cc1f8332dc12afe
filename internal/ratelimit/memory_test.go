package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterEnforcesLimit(t *testing.T) {
	l := NewMemory(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatal(err)
		}
		if !allowed {
			t.Fatalf("request %d blocked, want allowed", i+1)
		}
	}

	allowed, retry, err := l.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Fatal("fourth request allowed, want blocked")
	}
	if retry <= 0 || retry > time.Minute {
		t.Errorf("retryAfter = %v, want within the window", retry)
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l := NewMemory(1, time.Minute)
	ctx := context.Background()

	if allowed, _, _ := l.Allow(ctx, "a"); !allowed {
		t.Fatal("first request for key a blocked")
	}
	if allowed, _, _ := l.Allow(ctx, "b"); !allowed {
		t.Fatal("key b affected by key a's bucket")
	}
	if allowed, _, _ := l.Allow(ctx, "a"); allowed {
		t.Fatal("second request for key a allowed")
	}
}

func TestMemoryLimiterWindowResets(t *testing.T) {
	l := NewMemory(1, 10*time.Millisecond)
	ctx := context.Background()

	if allowed, _, _ := l.Allow(ctx, "a"); !allowed {
		t.Fatal("first request blocked")
	}
	if allowed, _, _ := l.Allow(ctx, "a"); allowed {
		t.Fatal("second request inside the window allowed")
	}

	time.Sleep(15 * time.Millisecond)
	if allowed, _, _ := l.Allow(ctx, "a"); !allowed {
		t.Fatal("request after window reset blocked")
	}
}
