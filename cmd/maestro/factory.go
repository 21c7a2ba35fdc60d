package main

import (
	"errors"
	"fmt"

	"maestro/internal/config"
	"maestro/internal/provider"
	"maestro/internal/provider/anthropic"
	"maestro/internal/provider/ollama"
)

// newCompleter creates the provider client selected by the configuration.
func newCompleter(cfg *config.Config) (provider.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOllama, "":
		return ollama.New(cfg.Ollama.Host, cfg.Ollama.APIKey), nil

	case config.ProviderAnthropic:
		key, err := config.GetAnthropicKey(cfg)
		if err != nil {
			// Bedrock authenticates through the AWS credential chain.
			if !cfg.Anthropic.UseBedrock {
				return nil, err
			}
			if !errors.Is(err, config.ErrNoAPIKey) {
				return nil, err
			}
			key = ""
		}

		client, err := anthropic.NewClient(anthropic.ClientConfig{
			APIKey:     key,
			UseBedrock: cfg.Anthropic.UseBedrock,
			AWSRegion:  cfg.Anthropic.AWSRegion,
			AWSProfile: cfg.Anthropic.AWSProfile,
		})
		if err != nil {
			return nil, fmt.Errorf("create anthropic client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unknown provider %q (expected %q or %q)",
			cfg.Provider, config.ProviderOllama, config.ProviderAnthropic)
	}
}
