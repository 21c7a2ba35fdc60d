package artifact

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	projectNameRe = regexp.MustCompile(`Project Name: (.*)`)
	treeRe        = regexp.MustCompile(`(?s)<folder_structure>(.*?)</folder_structure>`)
	codeBlockRe   = regexp.MustCompile("(?s)Filename: (\\S+)\\s*```\\w*\\n(.*?)\n```")
	nonWordRe     = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// CodeBlock is one extracted file: its bare name and the fenced contents.
type CodeBlock struct {
	Filename string
	Code     string
}

// Diagnostic records a non-fatal extraction problem. The parser never fails
// outright; missing or malformed sections degrade to defaults and leave a
// diagnostic behind.
type Diagnostic struct {
	Section string
	Message string
}

// Parsed is the structured view of the refiner's output.
type Parsed struct {
	// ProjectName is the extracted name, or the sanitized objective when the
	// output carries none.
	ProjectName string
	// Tree is the decoded directory layout; empty when absent or malformed.
	Tree Tree
	// CodeBlocks are the extracted files in order of appearance.
	CodeBlocks []CodeBlock
	// Diagnostics describe anything that could not be extracted cleanly.
	Diagnostics []Diagnostic
}

// SanitizeName collapses every run of characters outside letters, digits,
// and underscore to a single underscore, yielding a filesystem-safe name.
// Letters and digits in any script are kept.
func SanitizeName(s string) string {
	return nonWordRe.ReplaceAllString(s, "_")
}

// Parse extracts the project name, directory tree, and code blocks from
// refined output. The three extractions are independent: a section that is
// missing or malformed produces a diagnostic and a zero value without
// affecting the others. The objective supplies the fallback project name.
func Parse(refined, objective string) *Parsed {
	p := &Parsed{Tree: Tree{}}

	if m := projectNameRe.FindStringSubmatch(refined); m != nil {
		p.ProjectName = strings.TrimSpace(m[1])
	}
	if p.ProjectName == "" {
		p.ProjectName = SanitizeName(objective)
		p.Diagnostics = append(p.Diagnostics, Diagnostic{
			Section: "project name",
			Message: "no 'Project Name:' line found, using sanitized objective",
		})
	}

	if m := treeRe.FindStringSubmatch(refined); m != nil {
		tree, err := ParseTree(strings.TrimSpace(m[1]))
		if err != nil {
			p.Diagnostics = append(p.Diagnostics, Diagnostic{
				Section: "folder structure",
				Message: fmt.Sprintf("invalid JSON inside folder_structure tags: %v", err),
			})
		} else {
			p.Tree = tree
		}
	} else {
		p.Diagnostics = append(p.Diagnostics, Diagnostic{
			Section: "folder structure",
			Message: "no folder_structure tags found",
		})
	}

	for _, m := range codeBlockRe.FindAllStringSubmatch(refined, -1) {
		p.CodeBlocks = append(p.CodeBlocks, CodeBlock{Filename: m[1], Code: m[2]})
	}
	if len(p.CodeBlocks) == 0 {
		p.Diagnostics = append(p.Diagnostics, Diagnostic{
			Section: "code blocks",
			Message: "no 'Filename:' code blocks found",
		})
	}

	return p
}
