package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPromptObjective(t *testing.T) {
	in := strings.NewReader("  build a todo cli  \n")
	var out bytes.Buffer

	got, err := promptObjective(in, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "build a todo cli" {
		t.Errorf("objective = %q", got)
	}
	if !strings.Contains(out.String(), "enter your objective") {
		t.Errorf("prompt text missing: %q", out.String())
	}
}

func TestPromptObjective_NoTrailingNewline(t *testing.T) {
	got, err := promptObjective(strings.NewReader("objective"), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "objective" {
		t.Errorf("objective = %q", got)
	}
}

func TestSplitObjective(t *testing.T) {
	tests := []struct {
		objective string
		wantText  string
		wantPath  string
		ok        bool
	}{
		{"summarize ./notes/input.txt for me", "summarize", "./notes/input.txt", true},
		{"use /tmp/data.csv as the source", "use", "/tmp/data.csv", true},
		{"no file mentioned here", "no file mentioned here", "", false},
		// Dotted tokens without a path separator are not files.
		{"target python 3.12 compatibility", "target python 3.12 compatibility", "", false},
	}
	for _, tt := range tests {
		text, path, ok := splitObjective(tt.objective)
		if ok != tt.ok || text != tt.wantText || path != tt.wantPath {
			t.Errorf("splitObjective(%q) = %q, %q, %t; want %q, %q, %t",
				tt.objective, text, path, ok, tt.wantText, tt.wantPath, tt.ok)
		}
	}
}

func TestLoadSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("seed content"), 0o644); err != nil {
		t.Fatal(err)
	}

	objective, seed, err := loadSeed("summarize " + path + " for me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed != "seed content" {
		t.Errorf("seed = %q", seed)
	}
	// The path is split off before the objective reaches the core.
	if objective != "summarize" {
		t.Errorf("objective = %q, want %q", objective, "summarize")
	}
	if strings.Contains(objective, path) {
		t.Errorf("objective still contains the file path: %q", objective)
	}
}

func TestLoadSeed_NoFile(t *testing.T) {
	objective, seed, err := loadSeed("plain objective")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed != "" {
		t.Errorf("seed = %q, want empty", seed)
	}
	if objective != "plain objective" {
		t.Errorf("objective = %q, should be untouched", objective)
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, _, err := loadSeed("read /definitely/not/here.txt")
	if err == nil {
		t.Fatal("expected error for unreadable file")
	}
}
