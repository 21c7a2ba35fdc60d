package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"maestro/internal/console"
)

// Summary tallies what a materialization pass accomplished.
type Summary struct {
	Dirs    int
	Files   int
	Missing int
	Errors  []error
}

// Materializer writes a parsed directory tree and code blocks to disk.
// Materialization is best-effort: a failing entry is reported and counted,
// and the walk continues with its siblings.
type Materializer struct {
	reporter console.Reporter
}

// NewMaterializer creates a materializer reporting through the given console.
func NewMaterializer(reporter console.Reporter) *Materializer {
	return &Materializer{reporter: reporter}
}

// Materialize creates root (idempotently) and recreates the tree beneath it.
// File leaves are filled from the code block whose filename matches the entry
// name; a leaf with no matching block is skipped and counted as missing.
func (m *Materializer) Materialize(root string, tree Tree, blocks []CodeBlock) *Summary {
	sum := &Summary{}

	if err := os.MkdirAll(root, 0o755); err != nil {
		sum.Errors = append(sum.Errors, fmt.Errorf("create project root %s: %w", root, err))
		m.reporter.Error("cannot create project folder %s: %v", root, err)
		return sum
	}
	sum.Dirs++
	m.reporter.Info("created project folder: %s", root)

	m.walk(root, tree, blocks, sum)
	return sum
}

func (m *Materializer) walk(dir string, tree Tree, blocks []CodeBlock, sum *Summary) {
	for _, name := range tree.SortedKeys() {
		path := filepath.Join(dir, name)
		child := tree[name]

		if child != nil {
			if err := os.MkdirAll(path, 0o755); err != nil {
				sum.Errors = append(sum.Errors, fmt.Errorf("create folder %s: %w", path, err))
				m.reporter.Error("cannot create folder %s: %v", path, err)
				continue
			}
			sum.Dirs++
			m.reporter.Info("created folder: %s", path)
			m.walk(path, *child, blocks, sum)
			continue
		}

		code, ok := findCode(blocks, name)
		if !ok {
			sum.Missing++
			m.reporter.Warn("no code block found for %s, skipping", name)
			continue
		}
		if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
			sum.Errors = append(sum.Errors, fmt.Errorf("create file %s: %w", path, err))
			m.reporter.Error("cannot create file %s: %v", path, err)
			continue
		}
		sum.Files++
		m.reporter.Info("created file: %s", path)
	}
}

func findCode(blocks []CodeBlock, filename string) (string, bool) {
	for _, b := range blocks {
		if b.Filename == filename {
			return b.Code, true
		}
	}
	return "", false
}
