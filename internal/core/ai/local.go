package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// LocalAdapter talks to an Ollama-compatible local inference server
// over its /api/chat endpoint. LMStudio and llama.cpp's server both
// accept the same shape when run in Ollama-compatibility mode.
type LocalAdapter struct {
	endpoint    string
	client      *http.Client
	temperature float64
	prompts     PromptSource
}

// NewLocalAdapter builds a local adapter against endpoint (e.g.
// http://localhost:11434). Local inference can be far slower than a
// cloud call, hence the generous timeout.
func NewLocalAdapter(endpoint string, temperature float64) *LocalAdapter {
	return &LocalAdapter{
		endpoint:    endpoint,
		client:      &http.Client{Timeout: 300 * time.Second},
		temperature: temperature,
		prompts:     defaultPromptSource{},
	}
}

// WithPromptSource overrides the default system/user prompt builder.
func (l *LocalAdapter) WithPromptSource(p PromptSource) *LocalAdapter {
	l.prompts = p
	return l
}

func (l *LocalAdapter) Name() string { return "local" }

type localChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type localChatRequest struct {
	Model       string             `json:"model"`
	Messages    []localChatMessage `json:"messages"`
	Stream      bool               `json:"stream"`
	Temperature float64            `json:"temperature"`
}

// localChatResponse covers the shapes seen in the wild: Ollama-native
// ({message:{content}}), a llama.cpp server running in
// OpenAI-compatibility mode ({choices:[{message:{content}}]}), and the
// legacy {response:"..."} form.
type localChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Response string `json:"response"`
	Choices  []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Done    bool   `json:"done"`
	Error   string `json:"error,omitempty"`
	EvalTok int    `json:"eval_count,omitempty"`
	PromTok int    `json:"prompt_eval_count,omitempty"`
}

func (r localChatResponse) content() string {
	if r.Message.Content != "" {
		return r.Message.Content
	}
	if len(r.Choices) > 0 && r.Choices[0].Message.Content != "" {
		return r.Choices[0].Message.Content
	}
	return r.Response
}

func (l *LocalAdapter) Translate(ctx context.Context, source string, contextTexts []string, modelID string) (Result, error) {
	system, user := l.prompts.Build(source, contextTexts, "local", modelID)
	messages := []localChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}

	reqBody := localChatRequest{
		Model:       modelID,
		Messages:    messages,
		Stream:      false,
		Temperature: l.temperature,
	}
	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("ai: marshal local request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint+"/api/chat", bytes.NewReader(reqJSON))
	if err != nil {
		return Result{}, fmt.Errorf("ai: build local request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return Result{}, &ProviderError{Provider: "local", Code: "connection", Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Result{}, &ProviderError{Provider: "local", Code: "server_error", StatusCode: resp.StatusCode, Message: "local server error", Retryable: true}
	}

	var apiResp localChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return Result{}, fmt.Errorf("ai: decode local response: %w", err)
	}
	if apiResp.Error != "" {
		return Result{}, &ProviderError{Provider: "local", Code: "unknown", Message: apiResp.Error, Retryable: false}
	}

	content := apiResp.content()
	if content == "" {
		return Result{}, &ProviderError{Provider: "local", Code: "unknown", Message: "empty response from local server", Retryable: false}
	}

	return Result{
		Text:             content,
		PromptTokens:     apiResp.PromTok,
		CompletionTokens: apiResp.EvalTok,
	}, nil
}

func (l *LocalAdapter) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (l *LocalAdapter) ListModels(ctx context.Context) ([]ModelDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ai: build tags request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: "local", Code: "connection", Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai: local server returned %d", resp.StatusCode)
	}

	var tagsResp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return nil, fmt.Errorf("ai: decode tags response: %w", err)
	}

	models := make([]ModelDescriptor, len(tagsResp.Models))
	for i, m := range tagsResp.Models {
		models[i] = ModelDescriptor{ID: m.Name, Provider: "local"}
	}
	return models, nil
}

// buildSystemPrompt renders contextTexts as a "- " bulleted block
// ahead of the translation instruction, the passive-context mechanism
// spec.md §4.3 requires every Translate call to carry.
func buildSystemPrompt(contextTexts []string) string {
	if len(contextTexts) == 0 {
		return "Translate the user's message. Reply with only the translated text, no commentary."
	}
	prompt := "Translate the user's message, using the following preceding lines only as disambiguating context " +
		"(do not translate them, do not repeat them back):\n"
	for _, t := range contextTexts {
		prompt += "- " + t + "\n"
	}
	prompt += "Reply with only the translated text, no commentary."
	return prompt
}
