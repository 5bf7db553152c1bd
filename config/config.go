// Package config loads gpterm settings from an optional TOML file.
//
// Values resolve in order: command-line flag, environment variable, config
// file, then the defaults in [Default]. This package covers the last two;
// flags and environment are layered on top in cmd/gpterm.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gpterm/gpterm"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"

	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
)

// Config holds every setting that can come from the config file.
type Config struct {
	Provider        string  `toml:"provider"`
	Model           string  `toml:"model"`
	Temperature     float64 `toml:"temperature"`
	TypingDelay     int     `toml:"typing_delay"` // milliseconds
	Context         bool    `toml:"context"`
	History         bool    `toml:"history"`
	Window          int     `toml:"window"`
	SystemPrompt    string  `toml:"system_prompt"`
	APIURL          string  `toml:"api_url"`
	APIKey          string  `toml:"api_key"`
	GeminiAPIKey    string  `toml:"gemini_api_key"`
	AnthropicAPIKey string  `toml:"anthropic_api_key"`
	LogDir          string  `toml:"log_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Provider:    ProviderOpenAI,
		Temperature: 0.7,
		TypingDelay: 10,
		Window:      gpterm.DefaultWindow,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gpterm/config.toml, falling back to
// ~/.config/gpterm/config.toml.
func DefaultPath() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "gpterm", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gpterm", "config.toml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: unknown keys in %s: %s: %w", path, strings.Join(keys, ", "), gpterm.ErrValidation)
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic:
	default:
		errs = append(errs, fmt.Errorf("provider %q: must be %s, %s or %s: %w", c.Provider, ProviderOpenAI, ProviderGemini, ProviderAnthropic, gpterm.ErrValidation))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %g: must be in [0, 2]: %w", c.Temperature, gpterm.ErrValidation))
	}
	if c.TypingDelay < 0 {
		errs = append(errs, fmt.Errorf("typing_delay %d: must not be negative: %w", c.TypingDelay, gpterm.ErrValidation))
	}
	if c.Window < 2 {
		errs = append(errs, fmt.Errorf("window %d: must be at least 2: %w", c.Window, gpterm.ErrValidation))
	}
	return errors.Join(errs...)
}

// ModelName returns the configured model or the provider's default.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderAnthropic:
		return DefaultAnthropicModel
	}
	return DefaultOpenAIModel
}

// Delay returns TypingDelay as a duration.
func (c Config) Delay() time.Duration {
	return time.Duration(c.TypingDelay) * time.Millisecond
}

// Policy returns the history policy the settings describe.
func (c Config) Policy() gpterm.HistoryPolicy {
	return gpterm.HistoryPolicy{Context: c.Context, Window: c.Window}
}
