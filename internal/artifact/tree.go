// Package artifact turns refined model output into files on disk. The parser
// extracts the project name, directory tree, and per-file code blocks from the
// refiner's structured reply; the materializer writes them out best-effort.
package artifact

import (
	"encoding/json"
	"sort"
)

// Tree is a directory layout decoded from the refiner's JSON fragment. Keys
// are entry names; a nil value is a file, a non-nil value a subdirectory.
type Tree map[string]*Tree

// ParseTree decodes a directory tree from JSON text.
func ParseTree(data string) (Tree, error) {
	var t Tree
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, err
	}
	return t, nil
}

// IsFile reports whether the entry under name is a file leaf.
func (t Tree) IsFile(name string) bool {
	child, ok := t[name]
	return ok && child == nil
}

// SortedKeys returns the entry names in lexical order, giving the
// materializer a deterministic walk.
func (t Tree) SortedKeys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Files returns every file leaf name in the tree, recursively, in lexical
// order per directory.
func (t Tree) Files() []string {
	var files []string
	for _, name := range t.SortedKeys() {
		child := t[name]
		if child == nil {
			files = append(files, name)
			continue
		}
		files = append(files, child.Files()...)
	}
	return files
}
