package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gpterm/gpterm"
	"github.com/gpterm/gpterm/config"
)

// strictBoolEnv lists boolean environment variables that accept only
// "true" or "false".
var strictBoolEnv = []string{"CONTEXT", "HISTORY"}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to the TOML config file (default: $XDG_CONFIG_HOME/gpterm/config.toml)",
			EnvVars: []string{"GPTERM_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "provider",
			Usage:   "Provider: openai, gemini, anthropic",
			EnvVars: []string{"GPTERM_PROVIDER"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the OpenAI-compatible endpoint",
			EnvVars: []string{"API_KEY"},
		},
		&cli.StringFlag{
			Name:    "gemini-api-key",
			Usage:   "API key for Gemini",
			EnvVars: []string{"GEMINI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "anthropic-api-key",
			Usage:   "API key for Anthropic",
			EnvVars: []string{"ANTHROPIC_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "Chat completions endpoint",
			EnvVars: []string{"API_URL"},
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "Model ID (default: provider default)",
			EnvVars: []string{"MODEL"},
		},
		&cli.Float64Flag{
			Name:    "temperature",
			Usage:   "Sampling temperature in [0, 2]",
			EnvVars: []string{"TEMPERATURE"},
		},
		&cli.IntFlag{
			Name:    "typing-delay",
			Usage:   "Pause between echoed characters in milliseconds",
			EnvVars: []string{"TYPING_DELAY"},
		},
		&cli.BoolFlag{
			Name:    "context",
			Usage:   "Send previous messages with every request",
			EnvVars: []string{"CONTEXT"},
		},
		&cli.BoolFlag{
			Name:    "history",
			Usage:   "Store conversations in the log directory",
			EnvVars: []string{"HISTORY"},
		},
		&cli.StringFlag{
			Name:  "log-dir",
			Usage: "Directory for conversation logs (default: $XDG_DATA_HOME/gpterm/logs)",
		},
		&cli.StringFlag{
			Name:  "system",
			Usage: "System prompt for new sessions",
		},
		&cli.StringFlag{
			Name:  "session",
			Usage: "Path to a session file to resume and save",
		},
		&cli.BoolFlag{
			Name:  "plain",
			Usage: "Use the line-oriented prompt instead of the full-screen UI",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Write a debug log to the log directory",
		},
	}
}

// resolveConfig layers flags and environment over the config file.
// Environment values reach it through the flags' EnvVars; lookupEnv is only
// consulted to enforce strict booleans.
func resolveConfig(c *cli.Context, lookupEnv func(string) (string, bool)) (config.Config, error) {
	for _, name := range strictBoolEnv {
		if v, ok := lookupEnv(name); ok && v != "true" && v != "false" {
			return config.Config{}, fmt.Errorf("%s=%q: must be true or false: %w", name, v, gpterm.ErrValidation)
		}
	}

	path := c.String("config")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return config.Config{}, fmt.Errorf("config: %w", err)
		}
	} else if p, err := config.DefaultPath(); err == nil {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if c.IsSet("provider") {
		cfg.Provider = c.String("provider")
	}
	if c.IsSet("api-key") {
		cfg.APIKey = c.String("api-key")
	}
	if c.IsSet("gemini-api-key") {
		cfg.GeminiAPIKey = c.String("gemini-api-key")
	}
	if c.IsSet("anthropic-api-key") {
		cfg.AnthropicAPIKey = c.String("anthropic-api-key")
	}
	if c.IsSet("api-url") {
		cfg.APIURL = c.String("api-url")
	}
	if c.IsSet("model") {
		cfg.Model = c.String("model")
	}
	if c.IsSet("temperature") {
		cfg.Temperature = c.Float64("temperature")
	}
	if c.IsSet("typing-delay") {
		cfg.TypingDelay = c.Int("typing-delay")
	}
	if c.IsSet("context") {
		cfg.Context = c.Bool("context")
	}
	if c.IsSet("history") {
		cfg.History = c.Bool("history")
	}
	if c.IsSet("log-dir") {
		cfg.LogDir = c.String("log-dir")
	}
	if c.IsSet("system") {
		cfg.SystemPrompt = c.String("system")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}
