// Package prompts maps intent categories to canned system personas and
// assembles the user prompt from the request text, workspace context,
// target file contents, and an optional language hint.
package prompts

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/vqtran/devq/internal/constants"
)

// Intent is the category selecting the prompt persona and the
// post-processing path for a request.
type Intent string

const (
	IntentCreate   Intent = "create"
	IntentEdit     Intent = "edit"
	IntentAnalyze  Intent = "analyze"
	IntentRefactor Intent = "refactor"
	IntentTest     Intent = "test"
	IntentDebug    Intent = "debug"
	IntentExplain  Intent = "explain"
	IntentOther    Intent = "other"
)

// Intents lists the command words, in the order shown to users.
// IntentOther is the fallback and not a command word.
var Intents = []Intent{
	IntentCreate,
	IntentEdit,
	IntentAnalyze,
	IntentRefactor,
	IntentTest,
	IntentDebug,
	IntentExplain,
}

// personas are the canned system prompts, one per intent
var personas = map[Intent]string{
	IntentCreate:   "You are an expert software developer. Write clean, working code that satisfies the request, and put all code in fenced code blocks.",
	IntentEdit:     "You are an expert code editor. Propose precise modifications to the given files and show the updated code in fenced code blocks.",
	IntentAnalyze:  "You are a senior code reviewer. Examine the code for correctness, clarity, and potential bugs, and report what you find.",
	IntentRefactor: "You are a refactoring expert. Improve structure and readability without changing behavior, and show the result in fenced code blocks.",
	IntentTest:     "You are a testing expert. Write thorough, runnable tests for the code in question.",
	IntentDebug:    "You are a debugging expert. Find the likely cause of the problem and explain the fix.",
	IntentExplain:  "You are a code educator. Explain clearly and concisely, using examples where they help.",
	IntentOther:    "You are a helpful programming assistant.",
}

// leadIns prefix the request text in the user prompt
var leadIns = map[Intent]string{
	IntentCreate:   "Create the following: ",
	IntentEdit:     "Edit the code as follows: ",
	IntentAnalyze:  "Analyze the following: ",
	IntentRefactor: "Refactor as follows: ",
	IntentTest:     "Write tests for the following: ",
	IntentDebug:    "Debug the following issue: ",
	IntentExplain:  "Explain the following: ",
	IntentOther:    "",
}

// Parse matches word against the command words. It returns false for
// anything else, including "other", which is never typed directly.
func Parse(word string) (Intent, bool) {
	candidate := Intent(strings.ToLower(word))
	for _, intent := range Intents {
		if candidate == intent {
			return intent, true
		}
	}
	return IntentOther, false
}

// System returns the canned system prompt for intent
func System(intent Intent) string {
	if p, ok := personas[intent]; ok {
		return p
	}
	return personas[IntentOther]
}

// Mutating reports whether the intent asks for code changes. Replies to
// these intents get the code-block notice and a confirmation prompt.
func (i Intent) Mutating() bool {
	return i == IntentCreate || i == IntentEdit || i == IntentRefactor
}

// Build assembles the prompt pair for one request.
//
// The user text concatenates, in fixed order: the intent lead-in and
// request; a "Workspace Context" section when context is non-empty; a
// "Target Files" section when files were named; and a trailing language
// line when a hint was given. Every named file produces output, in
// caller order: either its first lines under a "Contents of <path>:"
// header or an explicit note that it does not exist.
func Build(intent Intent, request string, files []string, language, workspaceContext string) (string, string) {
	var b strings.Builder

	b.WriteString(leadIns[intent])
	b.WriteString(request)

	if workspaceContext != "" {
		b.WriteString("\n\nWorkspace Context:\n")
		b.WriteString(workspaceContext)
	}

	if len(files) > 0 {
		b.WriteString("\n\nTarget Files:\n")
		for _, path := range files {
			b.WriteString(fileSection(path))
		}
	}

	if language != "" {
		b.WriteString("\n\nTarget language: ")
		b.WriteString(language)
	}

	return System(intent), b.String()
}

// fileSection renders one target file for the prompt. Files that cannot
// be opened are reported, never skipped.
func fileSection(path string) string {
	lines, truncated, err := headLines(path, constants.MaxPromptFileLines)
	if err != nil {
		return fmt.Sprintf("\nNote: %s does not exist yet and will be created.\n", path)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nContents of %s:\n", path)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	if truncated {
		fmt.Fprintf(&b, "... (truncated at %d lines)\n", constants.MaxPromptFileLines)
	}
	return b.String()
}

// headLines reads up to n lines of the file at path and reports whether
// more remained.
func headLines(path string, n int) ([]string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	truncated := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(lines) >= n {
			truncated = true
			break
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	return lines, truncated, nil
}
