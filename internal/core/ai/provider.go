// Package ai defines the provider-agnostic LLM client abstraction
// (C3): a single-cue-per-call Translate contract implemented by a
// local (Ollama-style) adapter and a cloud (OpenAI-compatible)
// adapter, plus the typed error surface the retry engine classifies.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// ModelDescriptor identifies one callable model on one provider.
type ModelDescriptor struct {
	ID            string
	Provider      string
	ContextWindow int
}

// Result is what a single Translate call returns: the target text
// plus the token accounting the governor needs to update its
// sliding windows.
type Result struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Provider is the contract every backend (local or cloud) must
// satisfy. Unlike the batch-oriented adapters it replaces, Translate
// is single-cue-per-call: one source line and its surrounding,
// already-translated context texts in, one target line out.
type Provider interface {
	// Name identifies the provider for logging and error attribution.
	Name() string

	// Translate renders source into the target language, using
	// contextTexts (preceding cues' source or already-translated
	// text, oldest first) as passive disambiguating context.
	Translate(ctx context.Context, source string, contextTexts []string, modelID string) (Result, error)

	// Available reports whether the backend is reachable/authenticated,
	// without performing a translation.
	Available(ctx context.Context) bool

	// ListModels returns the models this provider currently exposes.
	ListModels(ctx context.Context) ([]ModelDescriptor, error)
}

// ProviderError is the typed error every adapter returns for
// request-level failures. The retry engine's classifier looks at Code
// first and falls back to string matching against Message only when
// Code is empty (see internal/core/retry).
type ProviderError struct {
	Provider   string
	Code       string // rate_limit, invalid_key, timeout, connection, server_error, content_filter, unknown
	Message    string
	StatusCode int
	Retryable  bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("[%s] %s (http %d): %s", e.Provider, e.Code, e.StatusCode, e.Message)
}

// IsRateLimitError reports whether err is a ProviderError classified
// as a rate limit response.
func IsRateLimitError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code == "rate_limit"
	}
	return false
}

// IsAuthError reports whether err is a ProviderError classified as an
// authentication failure.
func IsAuthError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code == "invalid_key" || pe.Code == "unauthorized"
	}
	return false
}
