// Package orchestrate implements the multi-role decomposition pipeline: an
// orchestrator role breaks an objective into sub-tasks, a sub-agent executes
// them one at a time with accumulated context, and a refiner consolidates
// every result into a single artifact. Replies cut off by output-length
// limits are transparently extended and concatenated.
package orchestrate

import (
	"context"
	"fmt"
	"strings"

	"maestro/internal/console"
	"maestro/internal/provider"
	"maestro/pkg/models"

	"github.com/fatih/color"
)

// State is the orchestration loop's position in its two-state machine.
type State int

const (
	// StateAwaitingNextStep means the loop is still requesting instructions.
	StateAwaitingNextStep State = iota
	// StateDone means the orchestrator has signaled completion.
	StateDone
)

// Outcome is the result of a finished orchestration loop.
type Outcome struct {
	// FinalText is the orchestrator's closing reply with the completion
	// marker stripped and whitespace trimmed.
	FinalText string
	// Exchanges are the completed (instruction, result) pairs in order.
	Exchanges []models.Exchange
	// Iterations is the number of orchestrator calls made.
	Iterations int
}

// Loop drives the decomposition state machine. Each iteration asks the
// orchestrator role for the next instruction or a completion signal,
// dispatches instructions to the sub-agent, and accumulates exchanges.
type Loop struct {
	completer provider.Completer
	subagent  *SubAgent
	reporter  console.Reporter
	model     string

	// maxIterations caps orchestrator calls; 0 means unbounded.
	maxIterations int

	state     State
	exchanges []models.Exchange
}

// NewLoop creates an orchestration loop. The completer issues the
// orchestrator role's requests against the given model; instructions are
// dispatched to the sub-agent. maxIterations of 0 leaves the loop unbounded.
func NewLoop(completer provider.Completer, subagent *SubAgent, reporter console.Reporter, model string, maxIterations int) *Loop {
	return &Loop{
		completer:     completer,
		subagent:      subagent,
		reporter:      reporter,
		model:         model,
		maxIterations: maxIterations,
		state:         StateAwaitingNextStep,
	}
}

// State returns the loop's current state.
func (l *Loop) State() State {
	return l.state
}

// Exchanges returns the completed exchanges in order.
func (l *Loop) Exchanges() []models.Exchange {
	return l.exchanges
}

// Run executes the loop to completion. Seed content is given to the
// orchestrator on the first call only, and appended to the first dispatched
// instruction only; afterwards it is discarded. Run returns once the
// orchestrator's reply carries the completion marker, or fails if the
// iteration bound is exceeded.
func (l *Loop) Run(ctx context.Context, objective, seed string) (*Outcome, error) {
	seedPending := seed != ""
	iterations := 0

	for l.state == StateAwaitingNextStep {
		if l.maxIterations > 0 && iterations >= l.maxIterations {
			return nil, fmt.Errorf("orchestrator did not signal completion within %d iterations", l.maxIterations)
		}
		iterations++

		orchestratorSeed := ""
		if iterations == 1 {
			orchestratorSeed = seed
		}

		l.reporter.Info("calling orchestrator (iteration %d)", iterations)
		prompt := orchestratorPrompt(objective, orchestratorSeed, models.Results(l.exchanges))

		reply, err := l.completer.Complete(ctx, l.model, provider.UserMessage(prompt))
		if err != nil {
			return nil, fmt.Errorf("orchestrator request: %w", err)
		}
		l.reporter.Panel("Orchestrator", reply, color.FgGreen)

		if strings.Contains(reply, CompletionMarker) {
			final := strings.TrimSpace(strings.ReplaceAll(reply, CompletionMarker, ""))
			l.state = StateDone
			return &Outcome{
				FinalText:  final,
				Exchanges:  l.exchanges,
				Iterations: iterations,
			}, nil
		}

		instruction := reply
		if seedPending {
			instruction = fmt.Sprintf("%s\n\nFile content:\n%s", instruction, seed)
			seedPending = false
		}

		result, err := l.subagent.Execute(ctx, instruction)
		if err != nil {
			return nil, fmt.Errorf("sub-task dispatch: %w", err)
		}

		l.exchanges = append(l.exchanges, models.Exchange{Instruction: instruction, Result: result})
	}

	// Unreachable: the loop exits only via return.
	return nil, fmt.Errorf("orchestration loop left %v state unexpectedly", l.state)
}
