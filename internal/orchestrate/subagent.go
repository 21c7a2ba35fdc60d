package orchestrate

import (
	"context"
	"fmt"
	"strings"

	"maestro/internal/console"
	"maestro/pkg/models"

	"github.com/fatih/color"
)

// SubAgent executes one decomposition step's instructions against its own
// accumulated task history. The history is local to the sub-agent and
// distinct from the orchestration loop's exchange sequence.
type SubAgent struct {
	runner   *ContinuationRunner
	reporter console.Reporter
	model    string
	history  []models.TaskRecord
}

// NewSubAgent creates a sub-agent bound to a model, dispatching through the
// given continuation runner.
func NewSubAgent(runner *ContinuationRunner, reporter console.Reporter, model string) *SubAgent {
	return &SubAgent{
		runner:   runner,
		reporter: reporter,
		model:    model,
	}
}

// Execute renders the sub-agent's prior task records followed by the current
// instruction, dispatches the composed prompt through the continuation
// runner, and records the completed task. The returned result is the fully
// reassembled (post-continuation) text.
func (a *SubAgent) Execute(ctx context.Context, instruction string) (string, error) {
	fullPrompt := instruction
	contPrompt := continuationPrompt
	if len(a.history) > 0 {
		historyText := models.RenderTaskHistory(a.history)
		fullPrompt = historyText + "\n\n" + instruction
		// Continuation rounds carry the same history, replacing only the
		// instruction with the standardized continuation request.
		contPrompt = historyText + "\n\n" + continuationPrompt
	}

	if strings.TrimSpace(fullPrompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	result, err := a.runner.Complete(ctx, a.model, fullPrompt, contPrompt)
	if err != nil {
		return "", fmt.Errorf("sub-agent execution: %w", err)
	}

	a.history = append(a.history, models.TaskRecord{Task: instruction, Result: result})

	a.reporter.Panel("Sub-agent Result", result, color.FgBlue)
	return result, nil
}

// History returns the sub-agent's recorded tasks in execution order.
func (a *SubAgent) History() []models.TaskRecord {
	return a.history
}
