package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocalAdapterTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message":            map[string]string{"content": "Hola."},
			"done":               true,
			"prompt_eval_count":  12,
			"eval_count":         4,
		})
	}))
	defer srv.Close()

	adapter := NewLocalAdapter(srv.URL, 0.3)
	result, err := adapter.Translate(context.Background(), "Hello.", nil, "llama3")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "Hola." {
		t.Errorf("got %q, want %q", result.Text, "Hola.")
	}
	if result.PromptTokens != 12 || result.CompletionTokens != 4 {
		t.Errorf("token accounting = (%d, %d), want (12, 4)", result.PromptTokens, result.CompletionTokens)
	}
}

func TestLocalAdapterAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	adapter := NewLocalAdapter(srv.URL, 0.3)
	if !adapter.Available(context.Background()) {
		t.Error("expected server to report available")
	}
}

func TestLocalAdapterSurfacesInferenceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": "model not loaded"})
	}))
	defer srv.Close()

	adapter := NewLocalAdapter(srv.URL, 0.3)
	_, err := adapter.Translate(context.Background(), "Hi", nil, "llama3")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthError(err) && IsRateLimitError(err) {
		t.Errorf("unexpected classification for: %v", err)
	}
}

func TestCloudAdapterTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Bonjour."}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 3},
		})
	}))
	defer srv.Close()

	adapter := NewCloudAdapter("openai", "sk-test", srv.URL, 0.3, nil)
	result, err := adapter.Translate(context.Background(), "Hello.", []string{"Hi there."}, "gpt-4o-mini")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "Bonjour." {
		t.Errorf("got %q, want %q", result.Text, "Bonjour.")
	}
}

func TestCloudAdapterClassifiesRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	adapter := NewCloudAdapter("openai", "sk-test", srv.URL, 0.3, nil)
	_, err := adapter.Translate(context.Background(), "Hello.", nil, "gpt-4o-mini")
	if !IsRateLimitError(err) {
		t.Errorf("expected rate limit classification, got: %v", err)
	}
}

func TestCloudAdapterClassifiesInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	adapter := NewCloudAdapter("openai", "sk-bad", srv.URL, 0.3, nil)
	_, err := adapter.Translate(context.Background(), "Hello.", nil, "gpt-4o-mini")
	if !IsAuthError(err) {
		t.Errorf("expected auth error classification, got: %v", err)
	}
}

func TestCloudAdapterListModelsFiltersOpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"id": "gpt-4o-mini"},
				{"id": "whisper-1"},
				{"id": "o1-preview"},
			},
		})
	}))
	defer srv.Close()

	adapter := NewCloudAdapter("openai", "sk-test", srv.URL, 0.3, nil)
	models, err := adapter.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2 (gpt-4o-mini, o1-preview): %+v", len(models), models)
	}
}

func TestEstimateTokensScalesWithScript(t *testing.T) {
	latin := EstimateTokens("Hello, how are you today?")
	cjk := EstimateTokens("こんにちは、お元気ですか？")
	if latin <= 0 || cjk <= 0 {
		t.Fatalf("expected positive estimates, got latin=%d cjk=%d", latin, cjk)
	}
}

func TestPriceTableEstimateCost(t *testing.T) {
	pt := PriceTable{PromptPerMillion: 5, CompletionPerMillion: 15}
	got := pt.EstimateCost(1_000_000, 1_000_000)
	if got != 20 {
		t.Errorf("got %f, want 20", got)
	}
}

func TestMetricsAverageLatency(t *testing.T) {
	var m Metrics
	m.RecordSuccess(Result{}, 100_000_000)
	m.RecordSuccess(Result{}, 200_000_000)
	m.RecordError()

	avg := m.AverageLatency()
	if avg != 150_000_000 {
		t.Errorf("got %v, want 150ms", avg)
	}
}
