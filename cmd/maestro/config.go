package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"maestro/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify maestro configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/maestro/config.yaml
Project-specific overrides can be placed in .maestro.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("provider: %s\n", cfg.Provider)
	fmt.Printf("ollama.host: %s\n", cfg.Ollama.Host)
	fmt.Printf("ollama.api_key: %s\n", config.MaskKey(cfg.Ollama.APIKey))
	fmt.Printf("ollama.auto_pull: %t\n", cfg.Ollama.AutoPull)
	fmt.Printf("anthropic.api_key: %s\n", config.MaskKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.use_bedrock: %t\n", cfg.Anthropic.UseBedrock)
	fmt.Printf("anthropic.aws_region: %s\n", cfg.Anthropic.AWSRegion)
	fmt.Printf("anthropic.aws_profile: %s\n", cfg.Anthropic.AWSProfile)
	fmt.Printf("roles.orchestrator: %s\n", cfg.Roles.Orchestrator)
	fmt.Printf("roles.subagent: %s\n", cfg.Roles.SubAgent)
	fmt.Printf("roles.refiner: %s\n", cfg.Roles.Refiner)
	fmt.Printf("continuation.threshold: %d\n", cfg.Continuation.Threshold)
	fmt.Printf("continuation.max: %d\n", cfg.Continuation.Max)
	fmt.Printf("loop.max_iterations: %d\n", cfg.Loop.MaxIterations)
	fmt.Printf("output.dir: %s\n", cfg.Output.Dir)
	fmt.Printf("output.log_dir: %s\n", cfg.Output.LogDir)
	fmt.Printf("output.history_db: %s\n", cfg.Output.HistoryDB)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "provider":
		return cfg.Provider, nil
	case "ollama.host":
		return cfg.Ollama.Host, nil
	case "ollama.api_key":
		return config.MaskKey(cfg.Ollama.APIKey), nil
	case "ollama.auto_pull":
		return strconv.FormatBool(cfg.Ollama.AutoPull), nil
	case "anthropic.api_key":
		return config.MaskKey(cfg.Anthropic.APIKey), nil
	case "anthropic.use_bedrock":
		return strconv.FormatBool(cfg.Anthropic.UseBedrock), nil
	case "anthropic.aws_region":
		return cfg.Anthropic.AWSRegion, nil
	case "anthropic.aws_profile":
		return cfg.Anthropic.AWSProfile, nil
	case "roles.orchestrator":
		return cfg.Roles.Orchestrator, nil
	case "roles.subagent":
		return cfg.Roles.SubAgent, nil
	case "roles.refiner":
		return cfg.Roles.Refiner, nil
	case "continuation.threshold":
		return strconv.Itoa(cfg.Continuation.Threshold), nil
	case "continuation.max":
		return strconv.Itoa(cfg.Continuation.Max), nil
	case "loop.max_iterations":
		return strconv.Itoa(cfg.Loop.MaxIterations), nil
	case "output.dir":
		return cfg.Output.Dir, nil
	case "output.log_dir":
		return cfg.Output.LogDir, nil
	case "output.history_db":
		return cfg.Output.HistoryDB, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "provider":
		if value != config.ProviderOllama && value != config.ProviderAnthropic {
			return fmt.Errorf("invalid provider %q (expected %q or %q)", value, config.ProviderOllama, config.ProviderAnthropic)
		}
		cfg.Provider = value
	case "ollama.host":
		cfg.Ollama.Host = value
	case "ollama.api_key":
		cfg.Ollama.APIKey = value
	case "ollama.auto_pull":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for ollama.auto_pull: %w", err)
		}
		cfg.Ollama.AutoPull = b
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.use_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for anthropic.use_bedrock: %w", err)
		}
		cfg.Anthropic.UseBedrock = b
	case "anthropic.aws_region":
		cfg.Anthropic.AWSRegion = value
	case "anthropic.aws_profile":
		cfg.Anthropic.AWSProfile = value
	case "roles.orchestrator":
		cfg.Roles.Orchestrator = value
	case "roles.subagent":
		cfg.Roles.SubAgent = value
	case "roles.refiner":
		cfg.Roles.Refiner = value
	case "continuation.threshold":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for continuation.threshold: %w", err)
		}
		cfg.Continuation.Threshold = n
	case "continuation.max":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for continuation.max: %w", err)
		}
		cfg.Continuation.Max = n
	case "loop.max_iterations":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for loop.max_iterations: %w", err)
		}
		cfg.Loop.MaxIterations = n
	case "output.dir":
		cfg.Output.Dir = value
	case "output.log_dir":
		cfg.Output.LogDir = value
	case "output.history_db":
		cfg.Output.HistoryDB = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
