package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CloudAdapter talks to any OpenAI-compatible chat-completions
// endpoint: OpenAI itself, OpenRouter, or any self-hosted gateway
// exposing the same /chat/completions shape. The two concrete
// providers the teacher split into separate types differed only in
// base URL, a couple of headers, and model-id filtering — all config,
// not behavior, so they are one adapter here.
type CloudAdapter struct {
	name        string
	apiKey      string
	baseURL     string
	client      *http.Client
	temperature float64
	extraHeader map[string]string
	prompts     PromptSource
}

// NewCloudAdapter builds a cloud adapter. name is used for error
// attribution and logging (e.g. "openai", "openrouter"); extraHeader
// lets OpenRouter's HTTP-Referer/X-Title attribution headers ride
// along without a separate type.
func NewCloudAdapter(name, apiKey, baseURL string, temperature float64, extraHeader map[string]string) *CloudAdapter {
	return &CloudAdapter{
		name:        name,
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{Timeout: 120 * time.Second},
		temperature: temperature,
		extraHeader: extraHeader,
		prompts:     defaultPromptSource{},
	}
}

// WithPromptSource overrides the default system/user prompt builder.
func (c *CloudAdapter) WithPromptSource(p PromptSource) *CloudAdapter {
	c.prompts = p
	return c
}

func (c *CloudAdapter) Name() string { return c.name }

type cloudMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type cloudRequest struct {
	Model       string         `json:"model"`
	Messages    []cloudMessage `json:"messages"`
	Temperature float64        `json:"temperature"`
	MaxTokens   int            `json:"max_tokens"`
}

type cloudResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

func (c *CloudAdapter) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.extraHeader {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *CloudAdapter) Translate(ctx context.Context, source string, contextTexts []string, modelID string) (Result, error) {
	system, user := c.prompts.Build(source, contextTexts, c.name, modelID)
	reqBody := cloudRequest{
		Model: modelID,
		Messages: []cloudMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   150,
	}
	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("ai: marshal %s request: %w", c.name, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/chat/completions", reqJSON)
	if err != nil {
		return Result{}, fmt.Errorf("ai: build %s request: %w", c.name, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, &ProviderError{Provider: c.name, Code: "connection", Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("ai: read %s response: %w", c.name, err)
	}

	var apiResp cloudResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return Result{}, fmt.Errorf("ai: parse %s response: %w", c.name, err)
	}

	if apiResp.Error != nil {
		return Result{}, c.classifyAPIError(resp.StatusCode, apiResp.Error.Type, apiResp.Error.Code, apiResp.Error.Message)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return Result{}, &ProviderError{Provider: c.name, Code: "rate_limit", StatusCode: resp.StatusCode, Message: string(respBody), Retryable: true}
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return Result{}, &ProviderError{Provider: c.name, Code: "invalid_key", StatusCode: resp.StatusCode, Message: string(respBody), Retryable: false}
	}
	if resp.StatusCode >= 500 {
		return Result{}, &ProviderError{Provider: c.name, Code: "server_error", StatusCode: resp.StatusCode, Message: string(respBody), Retryable: true}
	}
	if len(apiResp.Choices) == 0 {
		return Result{}, fmt.Errorf("ai: %s returned no choices", c.name)
	}

	return Result{
		Text:             apiResp.Choices[0].Message.Content,
		PromptTokens:     apiResp.Usage.PromptTokens,
		CompletionTokens: apiResp.Usage.CompletionTokens,
	}, nil
}

func (c *CloudAdapter) classifyAPIError(statusCode int, errType, errCode, message string) error {
	code := "unknown"
	retry := false
	switch {
	case errCode == "rate_limit_exceeded" || errType == "insufficient_quota":
		code, retry = "rate_limit", true
	case errCode == "invalid_api_key" || errType == "invalid_request_error" && errCode == "invalid_api_key":
		code = "invalid_key"
	case errType == "server_error" || statusCode >= 500:
		code, retry = "server_error", true
	case errCode == "content_filter":
		code = "content_filter"
	}
	return &ProviderError{Provider: c.name, Code: code, StatusCode: statusCode, Message: message, Retryable: retry}
}

func (c *CloudAdapter) Available(ctx context.Context) bool {
	models, err := c.ListModels(ctx)
	return err == nil && len(models) > 0
}

func (c *CloudAdapter) ListModels(ctx context.Context) ([]ModelDescriptor, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, fmt.Errorf("ai: build %s models request: %w", c.name, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: c.name, Code: "connection", Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{Provider: c.name, Code: "invalid_key", StatusCode: resp.StatusCode, Message: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{Provider: c.name, Code: "server_error", StatusCode: resp.StatusCode, Message: string(body), Retryable: resp.StatusCode >= 500}
	}

	var modelsResp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("ai: decode %s models: %w", c.name, err)
	}

	models := make([]ModelDescriptor, 0, len(modelsResp.Data))
	for _, m := range modelsResp.Data {
		if c.name == "openai" && !strings.HasPrefix(m.ID, "gpt") && !strings.HasPrefix(m.ID, "o1") {
			continue
		}
		models = append(models, ModelDescriptor{ID: m.ID, Provider: c.name})
	}
	return models, nil
}
