package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/lsilvatti/transtitle/internal/core/ai"
)

func TestClassifyTypedProviderError(t *testing.T) {
	tests := []struct {
		code string
		want ErrorClass
	}{
		{"rate_limit", ClassRateLimit},
		{"timeout", ClassTimeout},
		{"connection", ClassConnection},
		{"server_error", ClassServer},
		{"invalid_key", ClassAuthentication},
		{"content_filter", ClassContentFilter},
		{"something_else", ClassUnknown},
	}
	for _, tt := range tests {
		err := &ai.ProviderError{Code: tt.code}
		if got := Classify(err); got != tt.want {
			t.Errorf("Classify(code=%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestClassifyFallsBackToStringMatching(t *testing.T) {
	tests := []struct {
		msg  string
		want ErrorClass
	}{
		{"429 too many requests", ClassRateLimit},
		{"context deadline exceeded", ClassTimeout},
		{"dial tcp: connection refused", ClassConnection},
		{"401 unauthorized: bad api key", ClassAuthentication},
		{"response flagged by content filter", ClassContentFilter},
		{"upstream returned 503", ClassServer},
		{"something totally unexpected", ClassUnknown},
	}
	for _, tt := range tests {
		if got := Classify(errors.New(tt.msg)); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestRunSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Run(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRunRetriesThenSucceeds(t *testing.T) {
	calls := 0
	err := Run(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRunStopsImmediatelyOnAuthError(t *testing.T) {
	calls := 0
	err := Run(context.Background(), func() error {
		calls++
		return &ai.ProviderError{Code: "invalid_key", Message: "bad key"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on auth error)", calls)
	}
}

func TestRunStopsImmediatelyOnContentFilter(t *testing.T) {
	calls := 0
	err := Run(context.Background(), func() error {
		calls++
		return &ai.ProviderError{Code: "content_filter", Message: "blocked"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on content filter)", calls)
	}
}

func TestRunRespectsFallbackSentinel(t *testing.T) {
	calls := 0
	err := Run(context.Background(), func() error {
		calls++
		return ErrNeedsFallback
	})
	if !errors.Is(err, ErrNeedsFallback) {
		t.Errorf("expected ErrNeedsFallback, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRunExhaustsBudgetAtMaxAttempts(t *testing.T) {
	calls := 0
	err := Run(context.Background(), func() error {
		calls++
		return errors.New("upstream returned 500")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	want := PolicyFor(ClassServer).MaxAttempts
	if calls != want {
		t.Errorf("calls = %d, want %d (policy max_attempts)", calls, want)
	}
}

func TestPolicyForKnownClasses(t *testing.T) {
	p := PolicyFor(ClassRateLimit)
	if p.MaxAttempts != 8 {
		t.Errorf("rate limit MaxAttempts = %d, want 8", p.MaxAttempts)
	}
	p = PolicyFor(ClassContentFilter)
	if p.MaxAttempts != 1 {
		t.Errorf("content filter MaxAttempts = %d, want 1", p.MaxAttempts)
	}
}
