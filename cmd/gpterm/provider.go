package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gpterm/gpterm"
	"github.com/gpterm/gpterm/anthropic"
	"github.com/gpterm/gpterm/config"
	"github.com/gpterm/gpterm/gemini"
	"github.com/gpterm/gpterm/openai"
)

// resolveProvider constructs the provider cfg selects.
func resolveProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) (gpterm.Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("API_KEY not set (use --api-key, the environment variable or api_key in the config file)")
		}
		opts := []openai.Option{openai.WithLogger(logger.Named("openai"))}
		if cfg.APIURL != "" {
			opts = append(opts, openai.WithURL(cfg.APIURL))
		}
		return openai.New(cfg.APIKey, opts...), nil
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set (use --gemini-api-key, the environment variable or gemini_api_key in the config file)")
		}
		client, err := gemini.New(ctx, cfg.GeminiAPIKey,
			gemini.WithModel(cfg.ModelName()),
			gemini.WithLogger(logger.Named("gemini")),
		)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set (use --anthropic-api-key, the environment variable or anthropic_api_key in the config file)")
		}
		return anthropic.New(cfg.AnthropicAPIKey, anthropic.WithLogger(logger.Named("anthropic"))), nil
	default:
		return nil, fmt.Errorf("unknown provider %q: must be %q, %q or %q", cfg.Provider, config.ProviderOpenAI, config.ProviderGemini, config.ProviderAnthropic)
	}
}
