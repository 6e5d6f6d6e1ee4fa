package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/lsilvatti/transtitle/internal/config"
)

// ProviderInfo describes a provider's connection requirements,
// independent of any particular instance.
type ProviderInfo struct {
	Name        string
	Type        string // "cloud" or "local"
	RequiresKey bool
	Endpoint    string
}

// Factory builds a Provider from persisted configuration.
type Factory struct {
	config *config.Config
}

// NewFactory builds a provider factory bound to cfg.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{config: cfg}
}

// Create builds the Provider named by f.config.AIProvider.
func (f *Factory) Create(ctx context.Context) (Provider, error) {
	if f.config == nil {
		return nil, fmt.Errorf("ai: config is nil")
	}

	name := strings.ToLower(strings.TrimSpace(f.config.AIProvider))
	temperature := f.config.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	switch name {
	case "openrouter":
		if f.config.APIKey == "" {
			return nil, fmt.Errorf("ai: API key not configured for openrouter")
		}
		return NewCloudAdapter("openrouter", f.config.APIKey, "https://openrouter.ai/api/v1", temperature, map[string]string{
			"HTTP-Referer": "https://github.com/lsilvatti/transtitle",
			"X-Title":      "transtitle",
		}), nil

	case "openai":
		if f.config.APIKey == "" {
			return nil, fmt.Errorf("ai: API key not configured for openai")
		}
		return NewCloudAdapter("openai", f.config.APIKey, "https://api.openai.com/v1", temperature, nil), nil

	case "local", "ollama", "lmstudio":
		if f.config.LocalEndpoint == "" {
			return nil, fmt.Errorf("ai: local endpoint not configured")
		}
		return NewLocalAdapter(f.config.LocalEndpoint, temperature), nil

	default:
		return nil, fmt.Errorf("ai: unsupported provider %q (supported: openrouter, openai, local)", name)
	}
}

// Info returns metadata about the configured provider without
// instantiating it.
func (f *Factory) Info() (*ProviderInfo, error) {
	if f.config == nil {
		return nil, fmt.Errorf("ai: config is nil")
	}

	name := strings.ToLower(strings.TrimSpace(f.config.AIProvider))
	switch name {
	case "openrouter":
		return &ProviderInfo{Name: "OpenRouter", Type: "cloud", RequiresKey: true, Endpoint: "https://openrouter.ai/api/v1"}, nil
	case "openai":
		return &ProviderInfo{Name: "OpenAI", Type: "cloud", RequiresKey: true, Endpoint: "https://api.openai.com/v1"}, nil
	case "local", "ollama", "lmstudio":
		endpoint := f.config.LocalEndpoint
		if endpoint == "" {
			endpoint = "http://localhost:11434"
		}
		return &ProviderInfo{Name: "Local LLM", Type: "local", RequiresKey: false, Endpoint: endpoint}, nil
	default:
		return nil, fmt.Errorf("ai: unsupported provider %q", name)
	}
}

// Validate builds the configured provider and checks it is reachable.
func (f *Factory) Validate(ctx context.Context) error {
	if f.config.AIProvider == "" {
		return fmt.Errorf("ai: provider not configured")
	}
	provider, err := f.Create(ctx)
	if err != nil {
		return fmt.Errorf("ai: create provider: %w", err)
	}
	if !provider.Available(ctx) {
		return fmt.Errorf("ai: provider validation failed (check API key/endpoint)")
	}
	return nil
}

// ListAvailableProviders returns every provider name the factory can
// construct.
func ListAvailableProviders() []string {
	return []string{"openrouter", "openai", "local"}
}
