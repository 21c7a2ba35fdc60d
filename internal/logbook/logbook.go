// Package logbook persists a finished run: a timestamped markdown exchange
// log on disk and a row in the run-history database.
package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"maestro/internal/artifact"
	"maestro/pkg/models"

	"gopkg.in/yaml.v3"
)

// maxObjectiveInFilename caps how much of the sanitized objective ends up in
// the log filename.
const maxObjectiveInFilename = 25

// Meta is the run metadata written as YAML front matter at the top of the
// exchange log.
type Meta struct {
	ID                string    `yaml:"id"`
	Objective         string    `yaml:"objective"`
	Provider          string    `yaml:"provider"`
	OrchestratorModel string    `yaml:"orchestrator_model"`
	SubAgentModel     string    `yaml:"subagent_model"`
	RefinerModel      string    `yaml:"refiner_model"`
	StartedAt         time.Time `yaml:"started_at"`
	FinishedAt        time.Time `yaml:"finished_at"`
}

// Filename builds the log filename for an objective: the wall-clock time and
// a sanitized, truncated objective.
func Filename(objective string, now time.Time) string {
	sanitized := artifact.SanitizeName(objective)
	if len(sanitized) > maxObjectiveInFilename {
		sanitized = sanitized[:maxObjectiveInFilename]
	}
	return fmt.Sprintf("%s_%s.md", now.Format("15-04-05"), sanitized)
}

func banner(title string) string {
	rule := strings.Repeat("=", 40)
	return rule + " " + title + " " + rule
}

// Render produces the full exchange log: YAML front matter, the objective,
// every (task, result) pair in order, and the refined final output.
func Render(meta Meta, exchanges []models.Exchange, refined string) (string, error) {
	front, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal log front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "Objective: %s\n\n", meta.Objective)
	b.WriteString(banner("Task Breakdown"))
	b.WriteString("\n\n")
	for i, ex := range exchanges {
		fmt.Fprintf(&b, "Task %d:\nPrompt:\n%s\n\nResult:\n%s\n\n", i+1, ex.Instruction, ex.Result)
	}
	b.WriteString(banner("Refined Final Output"))
	b.WriteString("\n\n")
	b.WriteString(refined)
	b.WriteString("\n")

	return b.String(), nil
}

// Write renders the exchange log and writes it under dir, creating the
// directory if needed. It returns the full path of the written file.
func Write(dir string, meta Meta, exchanges []models.Exchange, refined string) (string, error) {
	content, err := Render(meta, exchanges, refined)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, Filename(meta.Objective, meta.FinishedAt))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write exchange log: %w", err)
	}
	return path, nil
}
