// Package models defines the shared data types for a maestro run.
package models

import "strings"

// Exchange records one completed sub-task as seen by the orchestration
// loop: the instruction that was dispatched and the result that came back.
// Exchanges are append-only; their order is the single source of truth for
// "previous results" context.
type Exchange struct {
	// Instruction is the prompt dispatched to the sub-agent.
	Instruction string
	// Result is the fully reassembled sub-agent response.
	Result string
}

// TaskRecord is the sub-agent's own memory of a completed task. It mirrors
// an Exchange but belongs to the sub-agent's private history, which is
// rendered into every subsequent sub-agent prompt.
type TaskRecord struct {
	Task   string
	Result string
}

// Results extracts the ordered result texts from a sequence of exchanges.
func Results(exchanges []Exchange) []string {
	results := make([]string, len(exchanges))
	for i, ex := range exchanges {
		results[i] = ex.Result
	}
	return results
}

// RenderTaskHistory renders sub-agent task records as "Task: ... / Result: ..."
// blocks, prefixed with a summary header. Records are rendered in order.
func RenderTaskHistory(records []TaskRecord) string {
	var b strings.Builder
	b.WriteString("Previous sub-agent tasks:")
	for _, rec := range records {
		b.WriteString("\nTask: ")
		b.WriteString(rec.Task)
		b.WriteString("\nResult: ")
		b.WriteString(rec.Result)
	}
	return b.String()
}
