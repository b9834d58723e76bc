package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1.0, 2)

	if !limiter.Allow("https://example.com/a") {
		t.Error("First request should be allowed")
	}
	if !limiter.Allow("https://example.com/b") {
		t.Error("Second request within burst should be allowed")
	}
	if limiter.Allow("https://example.com/c") {
		t.Error("Third request should exceed burst")
	}
}

func TestLimiter_DomainsAreIndependent(t *testing.T) {
	limiter := NewLimiter(1.0, 1)

	if !limiter.Allow("https://one.example.com/") {
		t.Error("First domain should be allowed")
	}
	if !limiter.Allow("https://two.example.com/") {
		t.Error("Second domain should have its own budget")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1) // Effectively one request then a long wait

	if err := limiter.Wait(context.Background(), "https://example.com/"); err != nil {
		t.Fatalf("First wait should pass immediately: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "https://example.com/"); err == nil {
		t.Error("Expected context deadline error on second wait")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(1.0, 1)
	if limiter.Allow("://bad") {
		t.Error("Expected invalid URL to be rejected")
	}
}
