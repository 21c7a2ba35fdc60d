package orchestrate

import (
	"context"
	"strings"
	"testing"

	"maestro/internal/console"
)

func TestRefiner_PromptCarriesObjectiveAndResults(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"refined text"}}
	refiner := NewRefiner(NewContinuationRunner(fake, console.Discard(), 4000, 3), console.Discard(), "ref-model")

	got, err := refiner.Refine(context.Background(), "build a parser", []string{"result one", "result two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "refined text" {
		t.Errorf("refined = %q", got)
	}

	prompt := fake.calls[0].prompt
	for _, want := range []string{
		"Objective: build a parser",
		"result one\nresult two",
		"Project Name:",
		FolderStructureOpenTag,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("refine prompt missing %q", want)
		}
	}
	if fake.calls[0].model != "ref-model" {
		t.Errorf("model = %q", fake.calls[0].model)
	}
}

func TestRefiner_ContinuationResendsRefinePrompt(t *testing.T) {
	long := strings.Repeat("r", 60)
	fake := &fakeCompleter{replies: []string{long, "tail"}}
	refiner := NewRefiner(NewContinuationRunner(fake, console.Discard(), 60, 3), console.Discard(), "ref-model")

	got, err := refiner.Refine(context.Background(), "objective", []string{"result"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != long+"tail" {
		t.Errorf("refined = %q", got)
	}

	cont := fake.calls[1].prompt
	if !strings.Contains(cont, "Objective: objective") {
		t.Errorf("continuation should resend the refine prompt: %q", cont)
	}
	if !strings.Contains(cont, "Continuing from the previous answer") {
		t.Errorf("continuation missing standard instruction: %q", cont)
	}
}
