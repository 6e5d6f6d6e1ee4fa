package concurrency

import (
	"context"
	"testing"
	"time"
)

func TestNewClampsInitial(t *testing.T) {
	c := New(50, 2, 10)
	if c.Current() != 10 {
		t.Errorf("Current() = %d, want clamped to max 10", c.Current())
	}

	c = New(0, 2, 10)
	if c.Current() != 2 {
		t.Errorf("Current() = %d, want clamped to min 2", c.Current())
	}
}

func TestUpdateGrowsOnFastLatency(t *testing.T) {
	c := New(3, 2, 10)
	for i := 0; i < 50; i++ {
		c.Update(100 * time.Millisecond)
	}
	if c.Current() <= 3 {
		t.Errorf("Current() = %d, expected growth above 3 after sustained fast latency", c.Current())
	}
}

func TestUpdateShrinksOnSlowLatency(t *testing.T) {
	c := New(8, 2, 10)
	for i := 0; i < 50; i++ {
		c.Update(3 * time.Second)
	}
	if c.Current() >= 8 {
		t.Errorf("Current() = %d, expected shrink below 8 after sustained slow latency", c.Current())
	}
	if c.Current() < 2 {
		t.Errorf("Current() = %d, must not go below min 2", c.Current())
	}
}

func TestAcquireRespectsCeiling(t *testing.T) {
	c := New(2, 1, 2)

	ctx := context.Background()
	if err := c.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := c.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	shortCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := c.Acquire(shortCtx); err == nil {
		t.Error("expected third Acquire to block past ceiling and time out")
	}

	c.Release()
	c.Release()
}

func TestEMAStartsAtDefault(t *testing.T) {
	c := New(3, 1, 5)
	if c.EMA() != defaultInitialEMA {
		t.Errorf("EMA() = %v, want default %v", c.EMA(), defaultInitialEMA)
	}
}
