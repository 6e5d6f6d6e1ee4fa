// Package governor implements the per-provider rate and token
// governor (C4): a 60-second sliding window over request count and
// token count, with a usage-ratio-driven backoff factor applied to
// the computed wait before the next call is admitted.
package governor

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limits configures one provider's admission thresholds.
type Limits struct {
	MaxRequestsPerWindow int
	MaxTokensPerWindow   int
	Window               time.Duration // defaults to 60s when zero
}

// Governor admits requests against a rolling window of recent request
// and token counts, computing a sleep duration when usage nears the
// configured limit and scaling that sleep by a backoff factor once
// usage crosses 90%/95% thresholds.
type Governor struct {
	limits Limits

	mu         sync.Mutex
	requestLog []time.Time
	tokenLog   []tokenSample

	// limiter provides a long-run steady-rate floor beneath the
	// windowed usage-ratio logic below: even before the 60s window
	// gets close to full, calls beyond a burst of one tenth of
	// MaxRequestsPerWindow are admitted no faster than the configured
	// average rate allows.
	limiter *rate.Limiter
}

type tokenSample struct {
	at     time.Time
	tokens int
}

// New builds a Governor for the given limits. A zero MaxRequestsPerWindow
// or MaxTokensPerWindow disables that dimension's admission check.
func New(limits Limits) *Governor {
	if limits.Window <= 0 {
		limits.Window = 60 * time.Second
	}

	g := &Governor{limits: limits}
	if limits.MaxRequestsPerWindow > 0 {
		steadyRate := rate.Limit(float64(limits.MaxRequestsPerWindow) / limits.Window.Seconds())
		burst := limits.MaxRequestsPerWindow / 10
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(steadyRate, burst)
	}
	return g
}

// Admit blocks until the request/token windows have room for one more
// call expected to consume estimatedTokens, applying the backoff
// factor if usage is already near the limit. It returns early if ctx
// is cancelled.
func (g *Governor) Admit(ctx context.Context, estimatedTokens int) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	wait := g.computeWait(estimatedTokens)
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	// Reserve the slot now, before the caller actually places the
	// call, so concurrent Admit callers see each other's outstanding
	// requests instead of all reading a stale, pre-call window.
	g.mu.Lock()
	g.requestLog = append(g.requestLog, time.Now())
	g.mu.Unlock()
	return nil
}

// computeWait prunes expired samples, measures usage ratios, and
// returns how long to sleep before the next call, scaled by the
// backoff factor table: >0.95 usage => 3.0x, >0.90 => 1.5x, else 1.0x.
func (g *Governor) computeWait(estimatedTokens int) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-g.limits.Window)
	g.requestLog = pruneTimes(g.requestLog, cutoff)
	g.tokenLog = pruneTokens(g.tokenLog, cutoff)

	requestRatio := 0.0
	if g.limits.MaxRequestsPerWindow > 0 {
		requestRatio = float64(len(g.requestLog)) / float64(g.limits.MaxRequestsPerWindow)
	}

	tokenTotal := 0
	for _, s := range g.tokenLog {
		tokenTotal += s.tokens
	}
	tokenRatio := 0.0
	if g.limits.MaxTokensPerWindow > 0 {
		tokenRatio = float64(tokenTotal+estimatedTokens) / float64(g.limits.MaxTokensPerWindow)
	}

	ratio := requestRatio
	if tokenRatio > ratio {
		ratio = tokenRatio
	}

	if ratio < 0.90 {
		return 0
	}

	// Time until the oldest entry falls out of the window, the
	// natural amount of slack that frees up capacity.
	base := g.timeUntilOldestExpires(now)
	if base <= 0 {
		base = 100 * time.Millisecond
	}

	factor := 1.0
	switch {
	case ratio > 0.95:
		factor = 3.0
	case ratio > 0.90:
		factor = 1.5
	}

	return time.Duration(float64(base) * factor)
}

func (g *Governor) timeUntilOldestExpires(now time.Time) time.Duration {
	var oldest time.Time
	if len(g.requestLog) > 0 {
		oldest = g.requestLog[0]
	}
	if len(g.tokenLog) > 0 && (oldest.IsZero() || g.tokenLog[0].at.Before(oldest)) {
		oldest = g.tokenLog[0].at
	}
	if oldest.IsZero() {
		return 0
	}
	return oldest.Add(g.limits.Window).Sub(now)
}

// Record logs a completed call's actual token usage so subsequent
// Admit calls see it in the rolling window. The request itself was
// already logged by Admit at admission time.
func (g *Governor) Record(tokens int) {
	if tokens <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tokenLog = append(g.tokenLog, tokenSample{at: time.Now(), tokens: tokens})
}

// Usage reports the current request and token ratios (0..1+) against
// configured limits, for observability/logging.
func (g *Governor) Usage() (requestRatio, tokenRatio float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := time.Now().Add(-g.limits.Window)
	g.requestLog = pruneTimes(g.requestLog, cutoff)
	g.tokenLog = pruneTokens(g.tokenLog, cutoff)

	if g.limits.MaxRequestsPerWindow > 0 {
		requestRatio = float64(len(g.requestLog)) / float64(g.limits.MaxRequestsPerWindow)
	}
	if g.limits.MaxTokensPerWindow > 0 {
		total := 0
		for _, s := range g.tokenLog {
			total += s.tokens
		}
		tokenRatio = float64(total) / float64(g.limits.MaxTokensPerWindow)
	}
	return requestRatio, tokenRatio
}

func pruneTimes(log []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(log) && log[i].Before(cutoff) {
		i++
	}
	return log[i:]
}

func pruneTokens(log []tokenSample, cutoff time.Time) []tokenSample {
	i := 0
	for i < len(log) && log[i].at.Before(cutoff) {
		i++
	}
	return log[i:]
}
