package orchestrate

import (
	"context"
	"fmt"

	"maestro/internal/console"

	"github.com/fatih/color"
)

// Refiner consolidates all sub-task results into one final artifact. It
// performs no structural validation; that is the artifact parser's job.
type Refiner struct {
	runner   *ContinuationRunner
	reporter console.Reporter
	model    string
}

// NewRefiner creates a refiner bound to a model, dispatching through the
// given continuation runner.
func NewRefiner(runner *ContinuationRunner, reporter console.Reporter, model string) *Refiner {
	return &Refiner{
		runner:   runner,
		reporter: reporter,
		model:    model,
	}
}

// Refine issues one continuation-aware request merging the objective and the
// ordered sub-task results into a cohesive final output, and returns the full
// refined text.
func (r *Refiner) Refine(ctx context.Context, objective string, results []string) (string, error) {
	r.reporter.Info("refining the final output for your objective")

	prompt := refinePrompt(objective, results)
	contPrompt := prompt + "\n\n" + continuationPrompt

	refined, err := r.runner.Complete(ctx, r.model, prompt, contPrompt)
	if err != nil {
		return "", fmt.Errorf("refine: %w", err)
	}

	r.reporter.Panel("Final Output", refined, color.FgGreen)
	return refined, nil
}
