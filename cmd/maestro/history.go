package main

import (
	"fmt"
	"os"
	"time"

	"maestro/internal/config"
	"maestro/internal/logbook"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent orchestration runs",
	Long: `List recent orchestration runs from the run-history database,
newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		dbPath := cfg.Output.HistoryDB
		if dbPath == "" {
			dbPath = logbook.DefaultDBPath()
		}
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		db, err := logbook.OpenDB(dbPath)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("%s  %s  [%s]  %d exchange(s)  %s\n",
				r.StartedAt.Local().Format(time.DateTime),
				shorten(r.Objective, 48),
				r.Provider,
				r.Exchanges,
				r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
			if r.ProjectName != "" {
				fmt.Printf("    project: %s\n", r.ProjectName)
			}
			if r.LogPath != "" {
				fmt.Printf("    log: %s\n", r.LogPath)
			}
		}
		return nil
	},
}

func shorten(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
}
