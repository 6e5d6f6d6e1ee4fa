// Package retry implements the retry/fallback engine (C5): a closed
// error-class taxonomy, a per-class policy table, and retry execution
// built on github.com/cenkalti/backoff/v4, plus the at-most-once model
// fallback mechanism.
package retry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lsilvatti/transtitle/internal/core/ai"
)

// ErrorClass is the closed taxonomy every provider failure is mapped
// to before a retry policy is chosen.
type ErrorClass int

const (
	ClassUnknown ErrorClass = iota
	ClassRateLimit
	ClassTimeout
	ClassConnection
	ClassServer
	ClassAuthentication
	ClassContentFilter
)

func (c ErrorClass) String() string {
	switch c {
	case ClassRateLimit:
		return "rate_limit"
	case ClassTimeout:
		return "timeout"
	case ClassConnection:
		return "connection"
	case ClassServer:
		return "server"
	case ClassAuthentication:
		return "authentication"
	case ClassContentFilter:
		return "content_filter"
	default:
		return "unknown"
	}
}

// Policy is the retry behavior assigned to one error class.
type Policy struct {
	MaxAttempts   int
	MaxElapsed    time.Duration
	BackoffFactor float64
	Jitter        bool
}

// policyTable mirrors spec.md §4.5's per-class table, itself grounded
// on the original implementation's _get_retry_strategy.
var policyTable = map[ErrorClass]Policy{
	ClassRateLimit:      {MaxAttempts: 8, MaxElapsed: 300 * time.Second, BackoffFactor: 1.5, Jitter: true},
	ClassTimeout:        {MaxAttempts: 4, MaxElapsed: 180 * time.Second, BackoffFactor: 2.0, Jitter: true},
	ClassConnection:     {MaxAttempts: 6, MaxElapsed: 120 * time.Second, BackoffFactor: 1.5, Jitter: false},
	ClassServer:         {MaxAttempts: 4, MaxElapsed: 120 * time.Second, BackoffFactor: 2.0, Jitter: true},
	ClassAuthentication: {MaxAttempts: 2, MaxElapsed: 30 * time.Second, BackoffFactor: 1.0, Jitter: false},
	ClassContentFilter:  {MaxAttempts: 1, MaxElapsed: time.Second, BackoffFactor: 1.0, Jitter: false},
	ClassUnknown:        {MaxAttempts: 5, MaxElapsed: 120 * time.Second, BackoffFactor: 1.5, Jitter: true},
}

// PolicyFor returns the configured policy for an error class.
func PolicyFor(class ErrorClass) Policy {
	return policyTable[class]
}

// Classify maps an error to its ErrorClass. Typed *ai.ProviderError
// values are classified by their Code field first; anything else
// (including plain wrapped errors from the standard library's HTTP
// stack) falls back to substring matching against the error text, the
// same two-tier approach spec.md §9 calls for and the design note
// attributes to providers that don't always return structured errors.
func Classify(err error) ErrorClass {
	var pe *ai.ProviderError
	if errors.As(err, &pe) {
		switch pe.Code {
		case "rate_limit":
			return ClassRateLimit
		case "timeout":
			return ClassTimeout
		case "connection":
			return ClassConnection
		case "server_error":
			return ClassServer
		case "invalid_key", "unauthorized":
			return ClassAuthentication
		case "content_filter":
			return ClassContentFilter
		}
	}

	s := strings.ToLower(err.Error())
	switch {
	case containsAny(s, "rate limit", "rate_limit", "too many requests"):
		return ClassRateLimit
	case containsAny(s, "timeout", "deadline exceeded"):
		return ClassTimeout
	case containsAny(s, "connection refused", "connection reset", "no such host", "eof"):
		return ClassConnection
	case containsAny(s, "unauthorized", "authentication", "api key", "invalid_key"):
		return ClassAuthentication
	case containsAny(s, "content filter", "content_filter", "content policy"):
		return ClassContentFilter
	case containsAny(s, "server error", "500", "502", "503", "504"):
		return ClassServer
	default:
		return ClassUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ErrNeedsFallback is returned by Run's operation to signal that
// retrying under the current model is futile (e.g. the model
// consistently refuses the request) and the caller should substitute
// its one-time fallback model instead of continuing to retry.
var ErrNeedsFallback = errors.New("retry: operation requests model fallback")

// Run executes op, retrying according to the policy selected by
// classifying each returned error, until success, a non-retryable
// class is hit, or the policy's attempt/elapsed budget is exhausted.
func Run(ctx context.Context, op func() error) error {
	var lastErr error
	var policy Policy
	classified := false

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, ErrNeedsFallback) {
			return backoff.Permanent(err)
		}

		class := Classify(err)
		if !classified {
			policy = PolicyFor(class)
			classified = true
		}
		if class == ClassAuthentication || class == ClassContentFilter {
			return backoff.Permanent(err)
		}
		return err
	}

	// First invocation establishes the policy; reuse it for the
	// backoff parameters that follow.
	if err := wrapped(); err == nil {
		return nil
	} else if perm, ok := err.(*backoff.PermanentError); ok {
		return perm.Err
	}

	b := backoff.NewExponentialBackOff()
	b.Multiplier = policy.BackoffFactor
	if b.Multiplier <= 1.0 {
		b.Multiplier = 1.5
	}
	b.MaxElapsedTime = policy.MaxElapsed
	if !policy.Jitter {
		b.RandomizationFactor = 0
	}

	maxAttempts := policy.MaxAttempts
	if maxAttempts <= 1 {
		maxAttempts = 1
	}

	// The manual call above already spent one attempt. backoff.Retry
	// itself performs one call plus WithMaxRetries(n) retries, i.e.
	// n+1 calls total, so n must be remaining-1 to keep the combined
	// call count at exactly maxAttempts.
	remaining := maxAttempts - 1
	if remaining <= 0 {
		return lastErr
	}

	err := backoff.Retry(wrapped, backoff.WithMaxRetries(backoff.WithContext(b, ctx), uint64(remaining-1)))
	if err != nil {
		return lastErr
	}
	return nil
}
