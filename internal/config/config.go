// Package config handles configuration loading and management for maestro.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for maestro.
type Config struct {
	Provider     string             `mapstructure:"provider"`
	Ollama       OllamaConfig       `mapstructure:"ollama"`
	Anthropic    AnthropicConfig    `mapstructure:"anthropic"`
	Roles        RolesConfig        `mapstructure:"roles"`
	Continuation ContinuationConfig `mapstructure:"continuation"`
	Loop         LoopConfig         `mapstructure:"loop"`
	Output       OutputConfig       `mapstructure:"output"`
}

// OllamaConfig holds Ollama server settings.
type OllamaConfig struct {
	// Host is the Ollama server address (local or cloud).
	Host string `mapstructure:"host"`
	// APIKey is optional and used for Bearer auth with Ollama cloud.
	APIKey string `mapstructure:"api_key"`
	// AutoPull pulls missing role models before a run.
	AutoPull bool `mapstructure:"auto_pull"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	// UseBedrock routes requests through AWS Bedrock instead of the direct API.
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// RolesConfig binds the three logical roles to model identifiers.
type RolesConfig struct {
	Orchestrator string `mapstructure:"orchestrator"`
	SubAgent     string `mapstructure:"subagent"`
	Refiner      string `mapstructure:"refiner"`
}

// ContinuationConfig controls truncation recovery for long responses.
type ContinuationConfig struct {
	// Threshold is the response length (in characters) at which a reply is
	// treated as possibly truncated.
	Threshold int `mapstructure:"threshold"`
	// Max is the maximum number of continuation rounds per logical request.
	Max int `mapstructure:"max"`
}

// LoopConfig controls the orchestration loop.
type LoopConfig struct {
	// MaxIterations caps orchestration iterations. 0 means unbounded.
	MaxIterations int `mapstructure:"max_iterations"`
}

// OutputConfig holds output locations.
type OutputConfig struct {
	// Dir is where generated project trees are rooted.
	Dir string `mapstructure:"dir"`
	// LogDir is where exchange logs are written.
	LogDir string `mapstructure:"log_dir"`
	// HistoryDB is the path of the run-history database.
	// Empty means the XDG data default.
	HistoryDB string `mapstructure:"history_db"`
}

// Provider identifiers accepted in Config.Provider.
const (
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
)

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (OLLAMA_HOST, ANTHROPIC_API_KEY)
// 2. Project config (.maestro.yaml in current directory or parent)
// 3. User config (~/.config/maestro/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Project config takes precedence over the user config.
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("ollama.host", "OLLAMA_HOST")
	v.BindEnv("ollama.api_key", "OLLAMA_API_KEY")
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.Ollama.APIKey = expandEnv(cfg.Ollama.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.Ollama.APIKey = expandEnv(cfg.Ollama.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("provider", cfg.Provider)
	v.Set("ollama.host", cfg.Ollama.Host)
	v.Set("ollama.api_key", cfg.Ollama.APIKey)
	v.Set("ollama.auto_pull", cfg.Ollama.AutoPull)
	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("roles.orchestrator", cfg.Roles.Orchestrator)
	v.Set("roles.subagent", cfg.Roles.SubAgent)
	v.Set("roles.refiner", cfg.Roles.Refiner)
	v.Set("continuation.threshold", cfg.Continuation.Threshold)
	v.Set("continuation.max", cfg.Continuation.Max)
	v.Set("loop.max_iterations", cfg.Loop.MaxIterations)
	v.Set("output.dir", cfg.Output.Dir)
	v.Set("output.log_dir", cfg.Output.LogDir)
	v.Set("output.history_db", cfg.Output.HistoryDB)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values. Role model defaults match the
// stock Ollama setup: a large instruct model orchestrates and refines, a
// small instruct model executes sub-tasks.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderOllama)

	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("ollama.api_key", "")
	v.SetDefault("ollama.auto_pull", true)

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.use_bedrock", false)

	v.SetDefault("roles.orchestrator", "llama3:70b-instruct")
	v.SetDefault("roles.subagent", "llama3:instruct")
	v.SetDefault("roles.refiner", "llama3:70b-instruct")

	v.SetDefault("continuation.threshold", 4000)
	v.SetDefault("continuation.max", 3)

	v.SetDefault("loop.max_iterations", 0)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.log_dir", ".")
	v.SetDefault("output.history_db", "")
}

// getUserConfigDir returns the XDG config directory for maestro.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "maestro")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "maestro")
	}
	return filepath.Join(home, ".config", "maestro")
}

// findProjectConfig searches for .maestro.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".maestro.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Provider: ProviderOllama,
		Ollama: OllamaConfig{
			Host:     "http://localhost:11434",
			AutoPull: true,
		},
		Roles: RolesConfig{
			Orchestrator: "llama3:70b-instruct",
			SubAgent:     "llama3:instruct",
			Refiner:      "llama3:70b-instruct",
		},
		Continuation: ContinuationConfig{
			Threshold: 4000,
			Max:       3,
		},
		Loop: LoopConfig{
			MaxIterations: 0,
		},
		Output: OutputConfig{
			Dir:    ".",
			LogDir: ".",
		},
	}
}

// RoleModels returns the configured role models in a fixed order, for
// preflight checks and display.
func (c *Config) RoleModels() []string {
	return []string{c.Roles.Orchestrator, c.Roles.SubAgent, c.Roles.Refiner}
}
