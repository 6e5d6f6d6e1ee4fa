// Package concurrency implements the adaptive concurrency controller
// (C6): an EMA of per-request latency drives grow/shrink of a counting
// semaphore's permit count between configured bounds.
package concurrency

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	defaultAlpha      = 0.10
	defaultInitialEMA = 800 * time.Millisecond
	growThreshold     = 500 * time.Millisecond
	shrinkThreshold   = 1500 * time.Millisecond
)

// Controller adapts the number of concurrent in-flight translate
// calls to observed latency: fast responses grow the permit count
// toward Max, slow ones shrink it toward Min.
//
// golang.org/x/sync/semaphore.Weighted has a fixed capacity set at
// construction, so the adaptive ceiling below Max is enforced by
// having the controller itself permanently hold (Max - current)
// "phantom" permits: shrinking acquires one more phantom permit
// (taking real capacity away from callers), growing releases one.
type Controller struct {
	mu  sync.Mutex
	sem *semaphore.Weighted

	current     int64
	min         int64
	max         int64
	phantomHeld int64
	ema         time.Duration
	alpha       float64
}

// New builds a Controller starting at `initial` permits, bounded to
// [min, max]. initial is clamped into that range.
func New(initial, min, max int) *Controller {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}

	c := &Controller{
		sem:   semaphore.NewWeighted(int64(max)),
		min:   int64(min),
		max:   int64(max),
		ema:   defaultInitialEMA,
		alpha: defaultAlpha,
	}

	phantom := int64(max - initial)
	if phantom > 0 {
		c.sem.Acquire(context.Background(), phantom)
	}
	c.current = int64(initial)
	c.phantomHeld = phantom

	return c
}

// Acquire blocks until a permit is available under the current
// adaptive ceiling, or ctx is cancelled.
func (c *Controller) Acquire(ctx context.Context) error {
	return c.sem.Acquire(ctx, 1)
}

// Release returns a permit to the pool.
func (c *Controller) Release() {
	c.sem.Release(1)
}

// Current returns the live adaptive permit ceiling.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.current)
}

// Update folds a new latency sample into the EMA and grows or shrinks
// the adaptive ceiling: EMA below 500ms grows toward Max, EMA above
// 1500ms shrinks toward Min.
func (c *Controller) Update(latency time.Duration) {
	c.mu.Lock()
	c.ema = time.Duration(c.alpha*float64(latency) + (1-c.alpha)*float64(c.ema))

	switch {
	case c.ema < growThreshold && c.current < c.max:
		c.current++
		c.phantomHeld--
		c.mu.Unlock()
		c.sem.Release(1)
		return

	case c.ema > shrinkThreshold && c.current > c.min:
		c.current--
		c.phantomHeld++
		c.mu.Unlock()
		// Reserve the capacity back as soon as it's free. A failed
		// TryAcquire just means every permit is currently in flight;
		// the background goroutine below picks it up the moment one
		// is released, so the ceiling still takes effect for the
		// very next Acquire rather than an arbitrary future one.
		if !c.sem.TryAcquire(1) {
			go c.sem.Acquire(context.Background(), 1)
		}
		return

	default:
		c.mu.Unlock()
	}
}

// EMA reports the current exponential moving average latency.
func (c *Controller) EMA() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ema
}
