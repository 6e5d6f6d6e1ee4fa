package engine

import "time"

// TranslationStats is the monotonic counter set spec.md §3 requires;
// derived values (speed, elapsed) are computed from these, never
// persisted separately.
type TranslationStats struct {
	StartedAt  time.Time
	FinishedAt time.Time

	TotalCues   int
	Translated  int
	Failed      int
	Skipped     int
	CacheHits   int
	TotalChars  int
	BatchCount  int
	RetryCount  int
	CacheErrors int
}

// Elapsed returns FinishedAt-StartedAt, or the zero duration if the
// job hasn't finished yet.
func (s TranslationStats) Elapsed() time.Duration {
	if s.FinishedAt.IsZero() || s.StartedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// CharsPerSecond is a derived throughput figure for reporting; it
// returns 0 if elapsed is zero to avoid a divide-by-zero.
func (s TranslationStats) CharsPerSecond() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.TotalChars) / elapsed
}

// snapshot returns a copy safe to hand to a checkpoint writer without
// holding the engine's lock past the copy.
func (s TranslationStats) snapshot() TranslationStats { return s }
