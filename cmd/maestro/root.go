package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var objectiveFlag string

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Multi-role LLM task orchestrator",
	Long: `Maestro drives a three-role pipeline against a local or remote LLM:
an orchestrator model breaks an objective into sub-tasks, a sub-agent model
executes them one at a time, and a refiner model consolidates everything
into a final output.

When the objective is a coding task, the refined output is parsed for a
project name, folder structure, and code files, and the project is written
to disk. Every run produces a timestamped exchange log and a row in the
run-history database.

With no --prompt flag, maestro asks for the objective interactively. An
objective may reference a text file by path; its content is handed to the
orchestrator and the first sub-task.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd.Context(), objectiveFlag)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&objectiveFlag, "prompt", "p", "", "Objective to run (skips the interactive prompt)")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}
