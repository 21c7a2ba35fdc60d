package orchestrate

import (
	"context"
	"fmt"

	"maestro/internal/console"
	"maestro/internal/provider"
)

// DefaultContinuationThreshold is the response length, in characters, at
// which a reply is treated as possibly truncated.
const DefaultContinuationThreshold = 4000

// DefaultMaxContinuations bounds how many continuation rounds a single
// logical request may trigger.
const DefaultMaxContinuations = 3

// ContinuationRunner makes a single logical completion request resilient to
// output-length truncation. A reply at or above the threshold is treated as
// possibly cut off: the runner warns, re-invokes the model with the caller's
// continuation prompt, and raw-concatenates the pieces. The loop is bounded
// by the configured maximum continuation count.
type ContinuationRunner struct {
	completer provider.Completer
	reporter  console.Reporter
	threshold int
	max       int
}

// NewContinuationRunner creates a runner over the given completer.
// Non-positive threshold or max fall back to the defaults.
func NewContinuationRunner(completer provider.Completer, reporter console.Reporter, threshold, max int) *ContinuationRunner {
	if threshold <= 0 {
		threshold = DefaultContinuationThreshold
	}
	if max <= 0 {
		max = DefaultMaxContinuations
	}
	return &ContinuationRunner{
		completer: completer,
		reporter:  reporter,
		threshold: threshold,
		max:       max,
	}
}

// Complete issues the initial prompt against the model and, while the most
// recent reply still looks truncated, follows up with contPrompt, up to the
// configured maximum. The pieces are concatenated without separators. A
// failed continuation call fails the whole request.
func (r *ContinuationRunner) Complete(ctx context.Context, model, prompt, contPrompt string) (string, error) {
	text, err := r.completer.Complete(ctx, model, provider.UserMessage(prompt))
	if err != nil {
		return "", err
	}

	accumulated := text
	last := text

	for rounds := 0; len(last) >= r.threshold; rounds++ {
		if rounds >= r.max {
			r.reporter.Warn("output still at truncation threshold after %d continuation(s), giving up", r.max)
			break
		}
		r.reporter.Warn("output may be truncated (%d chars), attempting to continue the response", len(last))

		last, err = r.completer.Complete(ctx, model, provider.UserMessage(contPrompt))
		if err != nil {
			return "", fmt.Errorf("continuation request: %w", err)
		}
		accumulated += last
	}

	return accumulated, nil
}
