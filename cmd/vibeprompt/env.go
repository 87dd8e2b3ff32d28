package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/vibeprompt/internal/config"
	"github.com/mark3labs/vibeprompt/internal/credentials"
	"github.com/mark3labs/vibeprompt/internal/gateway"
	"github.com/mark3labs/vibeprompt/internal/logger"
)

// loadConfig reads the layered configuration and applies its log settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("invalid log settings: %w", err)
	}
	return cfg, nil
}

// firstRunHint suggests setup when neither a global nor a project config
// file exists yet.
func firstRunHint() string {
	if config.Exists() {
		return ""
	}
	return "No config file found, using defaults. Run 'vibeprompt setup' to create one."
}

// newGateway resolves the API key and builds a Gemini-backed gateway.
func newGateway(ctx context.Context, cfg *config.Config) (*gateway.Gateway, error) {
	key, source, err := credentials.Resolve()
	if err != nil {
		if errors.Is(err, credentials.ErrNoAPIKey) {
			return nil, fmt.Errorf("%w\n\nSet GEMINI_API_KEY or run 'vibeprompt auth set'", err)
		}
		return nil, err
	}
	logger.Debug("Using API key from %s", source)

	gen, err := gateway.NewGeminiGenerator(ctx, key, cfg.Model)
	if err != nil {
		return nil, err
	}
	logger.Info("Generator: %s", gen.Name())
	return gateway.New(gen, gateway.WithTimeout(cfg.Timeout)), nil
}
