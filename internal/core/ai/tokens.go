package ai

import (
	"sync"
	"time"

	"github.com/lsilvatti/transtitle/internal/core/tokenizer"
)

// estimator is the shared token estimator used when a provider
// response doesn't report usage directly (e.g. local adapters without
// eval_count), so precision beyond "good enough for governor
// accounting" isn't needed.
var estimator = tokenizer.NewEstimator()

// EstimateTokens approximates the token count of text via estimator.
func EstimateTokens(text string) int {
	return estimator.EstimateTokens(text)
}

// PriceTable holds per-million-token pricing for a model, used to
// report estimated spend alongside TranslationStats. Zero values mean
// "unknown" rather than "free".
type PriceTable struct {
	PromptPerMillion     float64
	CompletionPerMillion float64
}

// EstimateCost returns the estimated USD cost of prompt+completion
// tokens under this price table.
func (p PriceTable) EstimateCost(promptTokens, completionTokens int) float64 {
	return float64(promptTokens)/1_000_000*p.PromptPerMillion +
		float64(completionTokens)/1_000_000*p.CompletionPerMillion
}

// Metrics accumulates call-level accounting for one provider across a
// run: request/token counts and latency totals for end-of-run
// reporting. The governor (C4) keeps its own rolling windows and does
// not read Metrics.
type Metrics struct {
	mu sync.Mutex

	TotalRequests  int
	TotalErrors    int
	PromptTokens   int
	CompletionToks int
	TotalLatency   time.Duration
}

// RecordSuccess folds a successful call into the running totals.
func (m *Metrics) RecordSuccess(r Result, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRequests++
	m.PromptTokens += r.PromptTokens
	m.CompletionToks += r.CompletionTokens
	m.TotalLatency += latency
}

// RecordError folds a failed call into the running totals.
func (m *Metrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRequests++
	m.TotalErrors++
}

// AverageLatency is the mean latency across all recorded successes.
func (m *Metrics) AverageLatency() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	successes := m.TotalRequests - m.TotalErrors
	if successes <= 0 {
		return 0
	}
	return m.TotalLatency / time.Duration(successes)
}
