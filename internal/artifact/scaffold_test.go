package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"maestro/internal/console"

	"github.com/fatih/color"
)

// stubReporter collects warnings and errors for assertions.
type stubReporter struct {
	warns  []string
	errors []string
}

func (r *stubReporter) Info(format string, args ...interface{}) {}
func (r *stubReporter) Warn(format string, args ...interface{}) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}
func (r *stubReporter) Error(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}
func (r *stubReporter) Panel(title, body string, _ color.Attribute) {}

func sampleTree(t *testing.T) Tree {
	t.Helper()
	tree, err := ParseTree(`{"src": {"main.py": null}, "readme.md": null}`)
	if err != nil {
		t.Fatalf("parse tree: %v", err)
	}
	return tree
}

func TestMaterialize_WritesTreeAndCode(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	blocks := []CodeBlock{
		{Filename: "main.py", Code: "print(1)"},
		{Filename: "readme.md", Code: "# proj"},
	}

	m := NewMaterializer(console.Discard())
	sum := m.Materialize(root, sampleTree(t), blocks)

	if len(sum.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", sum.Errors)
	}
	if sum.Dirs != 2 || sum.Files != 2 || sum.Missing != 0 {
		t.Errorf("summary = %+v", sum)
	}

	data, err := os.ReadFile(filepath.Join(root, "src", "main.py"))
	if err != nil {
		t.Fatalf("read main.py: %v", err)
	}
	if string(data) != "print(1)" {
		t.Errorf("main.py = %q", data)
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	blocks := []CodeBlock{{Filename: "main.py", Code: "print(1)"}}
	m := NewMaterializer(console.Discard())

	first := m.Materialize(root, sampleTree(t), blocks)
	second := m.Materialize(root, sampleTree(t), blocks)

	if len(first.Errors) != 0 || len(second.Errors) != 0 {
		t.Fatalf("repeat run should not fail: %v / %v", first.Errors, second.Errors)
	}
	data, err := os.ReadFile(filepath.Join(root, "src", "main.py"))
	if err != nil {
		t.Fatalf("read main.py: %v", err)
	}
	if string(data) != "print(1)" {
		t.Errorf("main.py = %q after second run", data)
	}
}

func TestMaterialize_EmptyTreeCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "prose_only")
	m := NewMaterializer(console.Discard())

	sum := m.Materialize(root, Tree{}, nil)

	if len(sum.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", sum.Errors)
	}
	if sum.Dirs != 1 || sum.Files != 0 {
		t.Errorf("summary = %+v, want root dir only", sum)
	}
	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("project root should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("project root is not a directory")
	}
}

func TestMaterialize_MissingCodeBlock(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	rec := &stubReporter{}
	m := NewMaterializer(rec)

	sum := m.Materialize(root, sampleTree(t), nil)

	if sum.Missing != 2 {
		t.Errorf("Missing = %d, want 2", sum.Missing)
	}
	if sum.Files != 0 {
		t.Errorf("Files = %d, want 0", sum.Files)
	}
	if len(rec.warns) != 2 {
		t.Errorf("expected 2 warnings, got %v", rec.warns)
	}
	// Leaves without code are not created.
	if _, err := os.Stat(filepath.Join(root, "readme.md")); !os.IsNotExist(err) {
		t.Errorf("readme.md should not exist, stat err = %v", err)
	}
}

func TestMaterialize_FailedEntryDoesNotStopSiblings(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	// Occupy the directory entry's path with a plain file so MkdirAll fails.
	if err := os.WriteFile(filepath.Join(root, "src"), []byte("in the way"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &stubReporter{}
	m := NewMaterializer(rec)
	blocks := []CodeBlock{{Filename: "readme.md", Code: "# proj"}}
	sum := m.Materialize(root, sampleTree(t), blocks)

	if len(sum.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", sum.Errors)
	}
	if !strings.Contains(sum.Errors[0].Error(), "src") {
		t.Errorf("error should name the failed entry: %v", sum.Errors[0])
	}

	// The sibling file is still written.
	data, err := os.ReadFile(filepath.Join(root, "readme.md"))
	if err != nil {
		t.Fatalf("sibling should still be created: %v", err)
	}
	if string(data) != "# proj" {
		t.Errorf("readme.md = %q", data)
	}
}
