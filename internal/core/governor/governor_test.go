package governor

import (
	"context"
	"testing"
	"time"
)

func TestAdmitNoWaitBelowThreshold(t *testing.T) {
	g := New(Limits{MaxRequestsPerWindow: 100, MaxTokensPerWindow: 100000, Window: time.Minute})

	start := time.Now()
	if err := g.Admit(context.Background(), 100); err != nil {
		t.Fatalf("Admit failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected near-instant admission, took %v", elapsed)
	}
}

func TestAdmitRaisesUsageRatio(t *testing.T) {
	g := New(Limits{MaxRequestsPerWindow: 10, Window: time.Minute})

	for i := 0; i < 9; i++ {
		if err := g.Admit(context.Background(), 0); err != nil {
			t.Fatalf("Admit failed: %v", err)
		}
	}
	reqRatio, _ := g.Usage()
	if reqRatio < 0.89 {
		t.Errorf("request ratio = %f, want ~0.9", reqRatio)
	}
}

func TestRecordDoesNotDoubleCountRequests(t *testing.T) {
	g := New(Limits{MaxRequestsPerWindow: 10, Window: time.Minute})

	if err := g.Admit(context.Background(), 0); err != nil {
		t.Fatalf("Admit failed: %v", err)
	}
	g.Record(500)

	reqRatio, _ := g.Usage()
	if reqRatio != 0.1 {
		t.Errorf("request ratio = %f, want 0.1 (one Admit, Record must not add another)", reqRatio)
	}
}

func TestUsageDisabledDimension(t *testing.T) {
	g := New(Limits{MaxRequestsPerWindow: 10, Window: time.Minute})
	_, tokenRatio := g.Usage()
	if tokenRatio != 0 {
		t.Errorf("token ratio = %f, want 0 when no token limit configured", tokenRatio)
	}
}

func TestComputeWaitScalesWithBackoffFactor(t *testing.T) {
	g := New(Limits{MaxRequestsPerWindow: 10, Window: time.Minute})

	for i := 0; i < 10; i++ {
		g.requestLog = append(g.requestLog, time.Now())
	}

	wait := g.computeWait(0)
	if wait <= 0 {
		t.Fatal("expected a nonzero wait once at 100% usage")
	}
	// The unscaled wait is the time until the oldest entry leaves the
	// one-minute window (just under a minute); at 100% usage the 3.0x
	// factor must push it past the window length.
	if wait <= g.limits.Window {
		t.Errorf("wait = %v, want more than the %v window once the backoff factor applies", wait, g.limits.Window)
	}
}

func TestPruneTimesDropsExpired(t *testing.T) {
	now := time.Now()
	log := []time.Time{now.Add(-2 * time.Minute), now.Add(-30 * time.Second), now}
	pruned := pruneTimes(log, now.Add(-time.Minute))
	if len(pruned) != 2 {
		t.Errorf("got %d entries, want 2", len(pruned))
	}
}

func TestAdmitRespectsContextCancellation(t *testing.T) {
	g := New(Limits{MaxRequestsPerWindow: 1, Window: time.Minute})
	g.requestLog = append(g.requestLog, time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := g.Admit(ctx, 0)
	if err == nil {
		t.Fatal("expected context deadline error")
	}
}
