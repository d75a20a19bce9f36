// Package display handles all terminal output: colored status lines,
// markdown rendering, spinners, and confirmation prompts. Errors and
// notices go to stderr so piped stdout stays clean response text.
package display

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	noticeLabel  = color.New(color.FgYellow).SprintFunc()
	headingStyle = color.New(color.FgCyan, color.Bold).SprintFunc()

	renderer *glamour.TermRenderer
)

// IsTerminal reports whether stdout is attached to a terminal.
// Rendering and spinners are disabled when output is piped.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// InitRenderer prepares the markdown renderer. Call once at startup;
// rendering falls back to plain text if this fails or is skipped.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	renderer = r
	return nil
}

// ShowError prints an error message to stderr.
func ShowError(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorLabel("Error:"), msg)
}

// ShowNotice prints an informational note to stderr.
func ShowNotice(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", noticeLabel("Note:"), msg)
}

// ShowHeading prints a section heading.
func ShowHeading(text string) {
	fmt.Println(headingStyle(text))
}

// ShowContent prints response text as-is.
func ShowContent(content string) {
	fmt.Println(content)
}

// ShowContentRendered prints response text through the markdown
// renderer, falling back to plain output when rendering is
// unavailable.
func ShowContentRendered(content string) {
	if renderer == nil {
		ShowContent(content)
		return
	}
	out, err := renderer.Render(content)
	if err != nil {
		ShowContent(content)
		return
	}
	fmt.Print(out)
}

// ClearScreen clears the terminal.
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}

// AskConfirmation prompts the user with a yes/no question and returns
// true only on an explicit yes.
func AskConfirmation(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Spinner wraps the terminal spinner and degrades to a no-op when
// stderr is not a terminal.
type Spinner struct {
	sp      *spinner.Spinner
	enabled bool
}

// NewSpinner creates a spinner with the given message. It writes to
// stderr so response output on stdout is unaffected.
func NewSpinner(msg string) *Spinner {
	fd := os.Stderr.Fd()
	enabled := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !enabled {
		return &Spinner{enabled: false}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	return &Spinner{sp: s, enabled: true}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if s.enabled {
		s.sp.Start()
	}
}

// Stop halts the spinner and clears its line.
func (s *Spinner) Stop() {
	if s.enabled {
		s.sp.Stop()
	}
}

// UpdateMessage changes the text shown next to the spinner.
func (s *Spinner) UpdateMessage(msg string) {
	if s.enabled {
		s.sp.Suffix = " " + msg
	}
}
