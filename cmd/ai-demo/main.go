package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lsilvatti/transtitle/internal/config"
	"github.com/lsilvatti/transtitle/internal/core/ai"
)

func main() {
	validateOnly := flag.Bool("validate", false, "Only validate provider configuration")
	listModels := flag.Bool("list", false, "List available models")
	testTranslation := flag.Bool("test", false, "Test translation with sample data")
	providerFlag := flag.String("provider", "", "Override provider (openrouter, openai, local)")
	model := flag.String("model", "", "Override model")
	apiKey := flag.String("key", "", "Override API key")
	endpoint := flag.String("endpoint", "", "Override endpoint (for local LLM)")
	temperature := flag.Float64("temp", 0.3, "Temperature (0.0-1.0)")

	flag.Parse()

	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║  transtitle AI package demo                                                   ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("⚠ Config not found, using defaults or CLI args\n")
		cfg = &config.Config{
			AIProvider:  "openrouter",
			Model:       "meta-llama/llama-3.3-70b-instruct",
			Temperature: 0.3,
		}
	}

	if *providerFlag != "" {
		cfg.AIProvider = *providerFlag
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}
	if *endpoint != "" {
		cfg.LocalEndpoint = *endpoint
	}
	if *temperature != 0.3 {
		cfg.Temperature = *temperature
	}

	fmt.Println("┌── CONFIGURATION ────────────────────────────────────────────────────────────┐")
	fmt.Printf("│ Provider:    %-60s │\n", cfg.AIProvider)
	fmt.Printf("│ Model:       %-60s │\n", cfg.Model)
	if cfg.AIProvider == "local" || cfg.AIProvider == "ollama" {
		fmt.Printf("│ Endpoint:    %-60s │\n", cfg.LocalEndpoint)
	} else {
		fmt.Printf("│ API Key:     %-60s │\n", maskAPIKey(cfg.APIKey))
	}
	fmt.Printf("│ Temperature: %.2f%-58s │\n", cfg.Temperature, "")
	fmt.Println("└─────────────────────────────────────────────────────────────────────────────┘")
	fmt.Println()

	factory := ai.NewFactory(cfg)

	info, err := factory.Info()
	if err != nil {
		fmt.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("┌── PROVIDER INFO ────────────────────────────────────────────────────────────┐")
	fmt.Printf("│ Name:        %-60s │\n", info.Name)
	fmt.Printf("│ Type:        %-60s │\n", info.Type)
	fmt.Printf("│ Endpoint:    %-60s │\n", info.Endpoint)
	fmt.Printf("│ Requires Key: %-59v │\n", info.RequiresKey)
	fmt.Println("└─────────────────────────────────────────────────────────────────────────────┘")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("⏳ Creating provider instance...")
	provider, err := factory.Create(ctx)
	if err != nil {
		fmt.Printf("❌ Failed to create provider: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Provider created successfully")
	fmt.Println()

	if *validateOnly || *listModels || *testTranslation {
		fmt.Println("⏳ Validating provider configuration...")
		if provider.Available(ctx) {
			fmt.Println("✓ Provider validation successful")
		} else {
			fmt.Println("❌ Provider validation failed (check API key/endpoint)")
			os.Exit(1)
		}
		fmt.Println()
	}

	if *listModels {
		fmt.Println("⏳ Fetching available models...")
		models, err := provider.ListModels(ctx)
		if err != nil {
			fmt.Printf("❌ Failed to list models: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("┌── AVAILABLE MODELS ─────────────────────────────────────────────────────────┐")
		for i, m := range models {
			if i >= 20 {
				fmt.Printf("│ ... and %d more models%-50s │\n", len(models)-20, "")
				break
			}
			fmt.Printf("│ • %-72s │\n", m.ID)
		}
		fmt.Println("└─────────────────────────────────────────────────────────────────────────────┘")
		fmt.Println()
	}

	if *testTranslation {
		fmt.Println("⏳ Testing translation with sample data...")

		sampleLines := []string{
			"Hello, how are you?",
			"I'm fine, thank you!",
			"What a beautiful day!",
		}

		fmt.Println()
		fmt.Println("┌── INPUT (SAMPLE DATA) ──────────────────────────────────────────────────────┐")
		for i, line := range sampleLines {
			fmt.Printf("│ [%d] %-69s │\n", i+1, line)
		}
		fmt.Println("└─────────────────────────────────────────────────────────────────────────────┘")
		fmt.Println()

		modelID := cfg.Model
		startTime := time.Now()
		var contextLines []string
		var translated []string
		var transErr error
		for _, line := range sampleLines {
			result, err := provider.Translate(ctx, line, contextLines, modelID)
			if err != nil {
				transErr = err
				break
			}
			translated = append(translated, result.Text)
			contextLines = append(contextLines, result.Text)
		}
		duration := time.Since(startTime)

		if transErr != nil {
			fmt.Printf("❌ Translation failed: %v\n", transErr)
			if ai.IsRateLimitError(transErr) {
				fmt.Println("   → Rate limit hit. Try again later.")
			} else if ai.IsAuthError(transErr) {
				fmt.Println("   → Authentication failed. Check your API key.")
			}
			os.Exit(1)
		}

		fmt.Println("┌── OUTPUT (TRANSLATED) ──────────────────────────────────────────────────────┐")
		for i, line := range translated {
			fmt.Printf("│ [%d] %-69s │\n", i+1, line)
		}
		fmt.Println("└─────────────────────────────────────────────────────────────────────────────┘")
		fmt.Println()

		fmt.Printf("✓ Translation completed in %.2fs\n", duration.Seconds())
		fmt.Println()
	}

	if !*validateOnly && !*listModels && !*testTranslation {
		fmt.Println("ℹ No action specified. Use:")
		fmt.Println("  --validate    Validate provider configuration")
		fmt.Println("  --list        List available models")
		fmt.Println("  --test        Test translation with sample data")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  go run cmd/ai-demo/main.go --validate")
		fmt.Println("  go run cmd/ai-demo/main.go --list --provider openai")
		fmt.Println("  go run cmd/ai-demo/main.go --test --provider openrouter --model meta-llama/llama-3.3-70b-instruct")
		fmt.Println()
	}

	fmt.Println("✓ Demo completed")
}

func maskAPIKey(key string) string {
	if key == "" {
		return "[NOT SET]"
	}
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "********************************" + key[len(key)-4:]
}
