package logbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"maestro/pkg/models"
)

func testMeta() Meta {
	return Meta{
		ID:                "run-1234",
		Objective:         "build a todo cli",
		Provider:          "ollama",
		OrchestratorModel: "llama3:70b-instruct",
		SubAgentModel:     "llama3:instruct",
		RefinerModel:      "llama3:70b-instruct",
		StartedAt:         time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC),
		FinishedAt:        time.Date(2026, 8, 23, 14, 35, 12, 0, time.UTC),
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 23, 14, 35, 12, 0, time.UTC)

	got := Filename("build a todo cli", now)
	if got != "14-35-12_build_a_todo_cli.md" {
		t.Errorf("Filename = %q", got)
	}

	long := Filename("an objective that goes on far longer than the cap", now)
	base := strings.TrimSuffix(strings.TrimPrefix(long, "14-35-12_"), ".md")
	if len(base) != maxObjectiveInFilename {
		t.Errorf("objective portion %q has length %d, want %d", base, len(base), maxObjectiveInFilename)
	}
}

func TestRender(t *testing.T) {
	exchanges := []models.Exchange{
		{Instruction: "first instruction", Result: "first result"},
		{Instruction: "second instruction", Result: "second result"},
	}

	out, err := Render(testMeta(), exchanges, "the refined output")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, "---\n") {
		t.Error("log should open with YAML front matter")
	}
	for _, want := range []string{
		"id: run-1234",
		"provider: ollama",
		"orchestrator_model: llama3:70b-instruct",
		"Objective: build a todo cli",
		"Task Breakdown",
		"Task 1:\nPrompt:\nfirst instruction",
		"Task 2:\nPrompt:\nsecond instruction",
		"Result:\nsecond result",
		"Refined Final Output",
		"the refined output",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := Write(dir, testMeta(), nil, "refined")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("log written to %q, want under %q", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "build a todo cli") {
		t.Error("written log missing objective")
	}
}

func TestDB_RecordAndList(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "maestro.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	first := Run{
		ID:          "run-a",
		Objective:   "objective a",
		ProjectName: "proj_a",
		LogPath:     "/tmp/a.md",
		Provider:    "ollama",
		Exchanges:   3,
		StartedAt:   time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		FinishedAt:  time.Date(2026, 8, 23, 10, 5, 0, 0, time.UTC),
	}
	second := first
	second.ID = "run-b"
	second.Objective = "objective b"
	second.StartedAt = first.StartedAt.Add(time.Hour)
	second.FinishedAt = first.FinishedAt.Add(time.Hour)

	if err := db.RecordRun(first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := db.RecordRun(second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].ID != "run-b" || runs[1].ID != "run-a" {
		t.Errorf("unexpected order: %q, %q", runs[0].ID, runs[1].ID)
	}
	if runs[1].Exchanges != 3 || runs[1].ProjectName != "proj_a" {
		t.Errorf("round-trip lost fields: %+v", runs[1])
	}
	if !runs[1].StartedAt.Equal(first.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", runs[1].StartedAt, first.StartedAt)
	}

	limited, err := db.ListRuns(1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "run-b" {
		t.Errorf("limit should keep the newest run, got %+v", limited)
	}
}

func TestOpenDB_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maestro.db")

	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	db.Close()

	// Migrations are idempotent across reopens.
	db, err = OpenDB(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("list after reopen: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty history, got %d", len(runs))
	}
}
