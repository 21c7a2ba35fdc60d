package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"maestro/internal/artifact"
	"maestro/internal/config"
	"maestro/internal/console"
	"maestro/internal/logbook"
	"maestro/internal/orchestrate"
	"maestro/internal/provider/anthropic"
	"maestro/internal/provider/ollama"
	"maestro/pkg/models"
)

// runPipeline executes one full orchestration run: objective intake, model
// preflight, the decomposition loop, refinement, artifact materialization,
// and run persistence.
func runPipeline(ctx context.Context, objective string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	reporter := console.New()

	if objective == "" {
		objective, err = promptObjective(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(objective) == "" {
		return fmt.Errorf("objective cannot be empty")
	}

	objective, seed, err := loadSeed(objective)
	if err != nil {
		return err
	}

	completer, err := newCompleter(cfg)
	if err != nil {
		return err
	}
	reporter.Info("provider: %s", completer.Name())

	if oc, ok := completer.(*ollama.Client); ok && cfg.Ollama.AutoPull {
		for _, model := range cfg.RoleModels() {
			pulled, err := oc.EnsureModel(ctx, model)
			if err != nil {
				return fmt.Errorf("model preflight %s: %w", model, err)
			}
			if pulled {
				reporter.Info("pulled model %s", model)
			}
		}
	}

	startedAt := time.Now()

	runner := orchestrate.NewContinuationRunner(completer, reporter, cfg.Continuation.Threshold, cfg.Continuation.Max)
	subagent := orchestrate.NewSubAgent(runner, reporter, cfg.Roles.SubAgent)
	loop := orchestrate.NewLoop(completer, subagent, reporter, cfg.Roles.Orchestrator, cfg.Loop.MaxIterations)

	outcome, err := loop.Run(ctx, objective, seed)
	if err != nil {
		return err
	}

	refiner := orchestrate.NewRefiner(runner, reporter, cfg.Roles.Refiner)
	refined, err := refiner.Refine(ctx, objective, models.Results(outcome.Exchanges))
	if err != nil {
		return err
	}

	finishedAt := time.Now()

	parsed := artifact.Parse(refined, objective)
	for _, d := range parsed.Diagnostics {
		reporter.Warn("%s: %s", d.Section, d.Message)
	}

	// The project root is created even when the tree is empty; the walk
	// over an empty tree is a no-op.
	root := filepath.Join(cfg.Output.Dir, parsed.ProjectName)
	sum := artifact.NewMaterializer(reporter).Materialize(root, parsed.Tree, parsed.CodeBlocks)
	reporter.Info("wrote %d folder(s) and %d file(s) under %s", sum.Dirs, sum.Files, root)
	if sum.Missing > 0 {
		reporter.Warn("%d file(s) had no matching code block", sum.Missing)
	}

	meta := logbook.Meta{
		ID:                uuid.NewString(),
		Objective:         objective,
		Provider:          completer.Name(),
		OrchestratorModel: cfg.Roles.Orchestrator,
		SubAgentModel:     cfg.Roles.SubAgent,
		RefinerModel:      cfg.Roles.Refiner,
		StartedAt:         startedAt.UTC(),
		FinishedAt:        finishedAt.UTC(),
	}

	logPath, err := logbook.Write(cfg.Output.LogDir, meta, outcome.Exchanges, refined)
	if err != nil {
		return err
	}
	reporter.Info("exchange log saved to %s", logPath)

	recordRun(reporter, cfg, meta, parsed.ProjectName, logPath, len(outcome.Exchanges))

	if ac, ok := completer.(*anthropic.Client); ok {
		in, out := ac.Tracker().Total()
		reporter.Info("token usage: %d input, %d output over %d call(s)", in, out, ac.Tracker().Calls())
	}

	return nil
}

// recordRun appends the run to the history database. History is best-effort:
// a failure is reported but never fails the run.
func recordRun(reporter console.Reporter, cfg *config.Config, meta logbook.Meta, projectName, logPath string, exchanges int) {
	dbPath := cfg.Output.HistoryDB
	if dbPath == "" {
		dbPath = logbook.DefaultDBPath()
	}

	db, err := logbook.OpenDB(dbPath)
	if err != nil {
		reporter.Warn("run history unavailable: %v", err)
		return
	}
	defer db.Close()

	err = db.RecordRun(logbook.Run{
		ID:          meta.ID,
		Objective:   meta.Objective,
		ProjectName: projectName,
		LogPath:     logPath,
		Provider:    meta.Provider,
		Exchanges:   exchanges,
		StartedAt:   meta.StartedAt,
		FinishedAt:  meta.FinishedAt,
	})
	if err != nil {
		reporter.Warn("record run history: %v", err)
	}
}
