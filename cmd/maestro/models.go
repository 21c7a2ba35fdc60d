package main

import (
	"fmt"

	"maestro/internal/config"
	"maestro/internal/provider/ollama"

	"github.com/spf13/cobra"
)

var modelsPull bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show configured role models and their availability",
	Long: `Show the models bound to the orchestrator, sub-agent, and refiner
roles, and whether each is present on the Ollama server. With --pull,
missing models are downloaded.

Only meaningful for the ollama provider; the anthropic provider serves
models on demand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Provider != config.ProviderOllama && cfg.Provider != "" {
			fmt.Printf("provider is %q; model preflight applies to ollama only\n", cfg.Provider)
			return nil
		}

		client := ollama.New(cfg.Ollama.Host, cfg.Ollama.APIKey)
		ctx := cmd.Context()

		roles := []struct {
			name  string
			model string
		}{
			{"orchestrator", cfg.Roles.Orchestrator},
			{"subagent", cfg.Roles.SubAgent},
			{"refiner", cfg.Roles.Refiner},
		}

		for _, r := range roles {
			if modelsPull {
				pulled, err := client.EnsureModel(ctx, r.model)
				if err != nil {
					return fmt.Errorf("ensure %s model %s: %w", r.name, r.model, err)
				}
				status := "present"
				if pulled {
					status = "pulled"
				}
				fmt.Printf("%-13s %-30s %s\n", r.name+":", r.model, status)
				continue
			}

			has, err := client.HasModel(ctx, r.model)
			if err != nil {
				return fmt.Errorf("check %s model %s: %w", r.name, r.model, err)
			}
			status := "missing"
			if has {
				status = "present"
			}
			fmt.Printf("%-13s %-30s %s\n", r.name+":", r.model, status)
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsPull, "pull", false, "Pull missing role models")
}
