// Package workspace collects a textual snapshot of a project directory
// for inclusion in prompts: a depth-limited file tree and, when the
// directory is under version control, a short git status summary.
//
// Collection is best-effort. Every failure degrades to a placeholder
// string so callers never have to handle an error from this package.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Walk limits. The snapshot orients the model; it does not mirror the
// repository.
const (
	maxDepth       = 3
	maxEntries     = 200
	maxStatusLines = 40
)

// skipDirs are directories excluded from the tree
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"dist":         true,
	"target":       true,
	".idea":        true,
	".vscode":      true,
}

// skipSuffixes are file patterns excluded from the tree
var skipSuffixes = []string{".pyc", ".pyo", ".class", ".o", ".so", ".exe", ".swp"}

// Collect returns the workspace context block for dir. It is recomputed
// on every call and never fails: unreadable directories and git errors
// degrade to placeholder text.
func Collect(dir string) string {
	var b strings.Builder

	b.WriteString("Directory structure:\n")
	b.WriteString(buildTree(dir))

	if summary := gitSummary(dir); summary != "" {
		b.WriteString("\nGit status:\n")
		b.WriteString(summary)
	}

	return strings.TrimRight(b.String(), "\n")
}

// buildTree walks dir up to maxDepth levels and renders an indented
// listing, skipping noise directories and compiled artifacts.
func buildTree(dir string) string {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "(directory unavailable)\n"
	}

	var b strings.Builder
	entries := 0
	truncated := false

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator))
		name := d.Name()

		if d.IsDir() {
			if depth >= maxDepth || skipDir(name) {
				return filepath.SkipDir
			}
		} else if depth >= maxDepth || skipFile(name) {
			return nil
		}

		if entries >= maxEntries {
			truncated = true
			return filepath.SkipAll
		}
		entries++

		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(name)
		if d.IsDir() {
			b.WriteString("/")
		}
		b.WriteString("\n")
		return nil
	})

	if entries == 0 {
		return "(directory unavailable)\n"
	}
	if truncated {
		b.WriteString("... (listing truncated)\n")
	}
	return b.String()
}

func skipDir(name string) bool {
	return skipDirs[name] || strings.HasPrefix(name, ".")
}

func skipFile(name string) bool {
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// gitSummary returns a porcelain-style status block for dir, an empty
// string when dir is not inside a git repository, and a placeholder
// when the repository exists but the status query fails.
func gitSummary(dir string) string {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return ""
		}
		return "(git status unavailable)\n"
	}

	var b strings.Builder
	if head, err := repo.Head(); err == nil {
		b.WriteString("On branch " + head.Name().Short() + "\n")
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "(git status unavailable)\n"
	}
	status, err := wt.Status()
	if err != nil {
		return "(git status unavailable)\n"
	}

	if status.IsClean() {
		b.WriteString("working tree clean\n")
		return b.String()
	}

	lines := strings.Split(strings.TrimRight(status.String(), "\n"), "\n")
	if len(lines) > maxStatusLines {
		rest := len(lines) - maxStatusLines
		lines = append(lines[:maxStatusLines], fmt.Sprintf("... and %d more", rest))
	}
	b.WriteString(strings.Join(lines, "\n") + "\n")
	return b.String()
}
