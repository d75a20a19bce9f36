package cmd

import (
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/spf13/cobra"

	"github.com/vqtran/devq/internal/api"
	"github.com/vqtran/devq/internal/display"
	"github.com/vqtran/devq/internal/logging"
	"github.com/vqtran/devq/internal/prompts"
	"github.com/vqtran/devq/internal/workspace"
)

// NewInteractiveCmd creates the interactive subcommand
func NewInteractiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"repl"},
		Short:   "Start an interactive session",
		Long: `Start a read-eval-print loop. Each line is dispatched like a one-shot
invocation: an optional leading command word (create, edit, analyze,
refactor, test, debug, explain) followed by the request. Reserved words
exit, quit, help, workspace, and clear control the session itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runInteractive(cmd)
		},
	}
}

// InteractiveSession holds the state for one REPL session.
type InteractiveSession struct {
	app      *App
	exitFlag bool
}

// runInteractive resolves configuration, then hands control to the
// prompt loop until an exit token or Ctrl+D.
func (app *App) runInteractive(cmd *cobra.Command) error {
	app.applyNumericFlags(cmd)

	if app.cfg.Verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	if err := app.cfg.Resolve(); err != nil {
		return err
	}

	// Every dispatch inside the loop behaves like an auto-confirmed
	// one-shot; dry-run and backup reminders make no sense here.
	app.cfg.AutoConfirm = true
	app.cfg.DryRun = false
	app.cfg.Backup = false

	client, err := api.NewClient(app.cfg)
	if err != nil {
		return err
	}
	app.client = client
	app.sessionLog = logging.NewSessionLogger(app.cfg.Dir)

	if display.IsTerminal() {
		if err := display.InitRenderer(); err != nil {
			logging.Debug("markdown renderer unavailable", logging.Fields{"error": err.Error()})
		}
	}

	fmt.Println("devq - Interactive Mode")
	fmt.Printf("Model: %s  API: %s\n", app.cfg.Model, app.cfg.Variant())
	fmt.Printf("Endpoint: %s\n", app.client.URL())
	fmt.Println("Type 'help' for commands, 'exit' or Ctrl+D to quit")
	fmt.Println()

	app.sessionLog.Infof("interactive session started")

	session := &InteractiveSession{app: app}

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix("devq> "),
		prompt.WithTitle("devq"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithMaxSuggestion(12),
		prompt.WithCompletionOnDown(),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println("\nGoodbye!")
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()

	app.sessionLog.Infof("interactive session ended")
	return nil
}

// executor handles one input line: reserved words first, then intent
// dispatch through the one-shot pipeline.
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	switch strings.ToLower(input) {
	case "exit", "quit":
		fmt.Println("Goodbye!")
		s.exitFlag = true
		return
	case "help":
		s.printHelp()
		return
	case "workspace":
		fmt.Println(workspace.Collect(s.app.cfg.Dir))
		return
	case "clear":
		display.ClearScreen()
		return
	}

	intent, request := parseInput(input)

	fmt.Println()
	if err := s.app.runRequest(intent, request); err != nil {
		display.ShowError(err.Error())
	}
	fmt.Println()
}

// parseInput splits a REPL line into intent and request. A lone word
// is always a whole explain request, even when it matches a command
// word, because a command with no text after it has nothing to act on.
func parseInput(input string) (prompts.Intent, string) {
	first, rest, found := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	if !found || rest == "" {
		return prompts.IntentExplain, input
	}
	if intent, ok := prompts.Parse(first); ok {
		return intent, rest
	}
	return prompts.IntentExplain, input
}

// completer suggests command words while the first token is being
// typed. Suggestions stop once a request is underway.
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	if strings.Contains(strings.TrimSpace(text), " ") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	suggestions := []prompt.Suggest{
		{Text: "create", Description: "Generate new code"},
		{Text: "edit", Description: "Modify existing files"},
		{Text: "analyze", Description: "Review code for problems"},
		{Text: "refactor", Description: "Restructure without changing behavior"},
		{Text: "test", Description: "Write tests"},
		{Text: "debug", Description: "Find the cause of a bug"},
		{Text: "explain", Description: "Explain code or concepts"},
		{Text: "workspace", Description: "Show the workspace context block"},
		{Text: "clear", Description: "Clear the screen"},
		{Text: "help", Description: "Show the command list"},
		{Text: "exit", Description: "Leave interactive mode"},
	}

	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// printHelp lists the REPL commands.
func (s *InteractiveSession) printHelp() {
	display.ShowHeading("Commands")
	fmt.Println("  create <request>     Generate new code")
	fmt.Println("  edit <request>       Modify existing files")
	fmt.Println("  analyze <request>    Review code for problems")
	fmt.Println("  refactor <request>   Restructure without changing behavior")
	fmt.Println("  test <request>       Write tests")
	fmt.Println("  debug <request>      Find the cause of a bug")
	fmt.Println("  explain <request>    Explain code or concepts")
	fmt.Println()
	display.ShowHeading("Session")
	fmt.Println("  workspace            Show the workspace context block")
	fmt.Println("  clear                Clear the screen")
	fmt.Println("  help                 Show this list")
	fmt.Println("  exit, quit           Leave interactive mode")
	fmt.Println()
	fmt.Println("Anything else is sent as an explain request.")
}
