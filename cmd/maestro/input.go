package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// filePathRe matches a file-looking token (path characters ending in an
// extension) inside an objective.
var filePathRe = regexp.MustCompile(`[./\w]+\.[\w]+`)

// promptObjective asks the operator for the objective on the terminal.
func promptObjective(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Please enter your objective with or without a text file path: ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read objective: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// splitObjective separates the objective text from a referenced file path.
// Objectives without a path separator never match, so bare words with dots
// (versions, abbreviations) are not mistaken for files. When a path is
// found, only the trimmed text before it is kept as the objective.
func splitObjective(objective string) (text, path string, ok bool) {
	if !strings.Contains(objective, "/") {
		return objective, "", false
	}
	loc := filePathRe.FindStringIndex(objective)
	if loc == nil {
		return objective, "", false
	}
	return strings.TrimSpace(objective[:loc[0]]), objective[loc[0]:loc[1]], true
}

// loadSeed resolves the file reference in an objective, if any. It returns
// the objective with the path split off and the referenced file's content.
func loadSeed(objective string) (string, string, error) {
	text, path, ok := splitObjective(objective)
	if !ok {
		return objective, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read objective file %s: %w", path, err)
	}
	return text, string(data), nil
}
