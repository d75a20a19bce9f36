package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vqtran/devq/internal/api"
	"github.com/vqtran/devq/internal/config"
	"github.com/vqtran/devq/internal/display"
	"github.com/vqtran/devq/internal/logging"
	"github.com/vqtran/devq/internal/prompts"
	"github.com/vqtran/devq/internal/workspace"
)

// App holds the application state
type App struct {
	cfg        *config.Config
	client     api.Client
	sessionLog *logging.SessionLogger

	// Numeric flag values live here until applyNumericFlags copies
	// them into the config; copying only on Changed keeps flag
	// defaults from shadowing environment or config-file values.
	flagTemperature float64
	flagMaxTokens   int
	setup           bool
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()
	rootCmd := newRootCmd(app)

	if err := rootCmd.Execute(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}
}

// newRootCmd builds the root command and its flag surface around app.
func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devq [command] \"request\"",
		Short: "A developer assistant for your terminal",
		Long: `devq sends coding requests to an OpenAI-compatible endpoint, with
workspace context (file tree, git status) and target file contents
attached automatically.

Commands select a task-specific prompt: create, edit, analyze,
refactor, test, debug, explain. Text that does not start with a
command is treated as an explain request.

Examples:
  devq "how do goroutines differ from OS threads?"
  devq create "an HTTP healthcheck endpoint" -f server.go
  devq edit "add input validation" -f handlers.py -l python
  devq refactor "extract the retry logic" -f client.go -y
  devq interactive                  # REPL mode
  devq --show-workspace             # print the context block and exit
  devq --setup                      # guided configuration`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&app.cfg.ConfigFile, "config", "", "Config file path (default ~/"+config.ConfigFileName+")")
	pf.StringVar(&app.cfg.Endpoint, "endpoint", "", "API endpoint base URL")
	pf.StringVar(&app.cfg.APIKey, "api-key", "", "API key (overrides "+config.EnvAPIKey+")")
	pf.StringVar(&app.cfg.AssistantID, "assistant", "", "Assistant identifier for the assistant API")
	pf.StringVar(&app.cfg.API, "api", "", "API variant: chat or assistant (default: auto-detect)")
	pf.StringVarP(&app.cfg.Model, "model", "m", "", "Model name (e.g. "+config.DefaultModel+")")
	pf.Float64VarP(&app.flagTemperature, "temperature", "t", config.DefaultTemperature, "Sampling temperature (0 to 2)")
	pf.IntVar(&app.flagMaxTokens, "max-tokens", config.DefaultMaxTokens, "Response token limit")
	pf.StringSliceVarP(&app.cfg.Files, "file", "f", nil, "Target file(s), comma-separated or repeated")
	pf.StringVarP(&app.cfg.Dir, "dir", "d", ".", "Workspace directory")
	pf.StringVarP(&app.cfg.Language, "language", "l", "", "Target language hint")
	pf.BoolVar(&app.cfg.ShowWorkspace, "show-workspace", false, "Print the workspace context block and exit")
	pf.BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug output")
	pf.BoolVarP(&app.cfg.AutoConfirm, "yes", "y", false, "Skip confirmation prompts")
	pf.BoolVar(&app.cfg.DryRun, "dry-run", false, "Build the prompt but do not send it")
	pf.BoolVar(&app.cfg.Backup, "backup", false, "Remind to back up files before applying suggested edits")
	pf.BoolVar(&app.setup, "setup", false, "Run guided setup and exit")

	rootCmd.AddCommand(NewInteractiveCmd(app))

	return rootCmd
}

func (app *App) run(cmd *cobra.Command, args []string) error {
	app.applyNumericFlags(cmd)

	if app.cfg.Verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	if app.setup {
		return app.runSetup()
	}

	// Workspace inspection needs no credentials and no network.
	if app.cfg.ShowWorkspace {
		fmt.Println(workspace.Collect(app.cfg.Dir))
		return nil
	}

	if len(args) == 0 {
		return cmd.Help()
	}

	intent, request, err := resolveArgs(args)
	if err != nil {
		return err
	}

	if err := app.cfg.Resolve(); err != nil {
		return err
	}

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

	return app.runRequest(intent, request)
}

// applyNumericFlags copies numeric flag values into the config only
// when the user actually set them.
func (app *App) applyNumericFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("temperature") {
		app.cfg.Temperature = app.flagTemperature
	}
	if cmd.Flags().Changed("max-tokens") {
		app.cfg.MaxTokens = app.flagMaxTokens
	}
}

// resolveArgs maps positional arguments to an intent and request. A
// recognized command word consumes the first token and requires
// request text after it; anything else becomes an explain request over
// the whole input.
func resolveArgs(args []string) (prompts.Intent, string, error) {
	intent, ok := prompts.Parse(args[0])
	if !ok {
		return prompts.IntentExplain, strings.Join(args, " "), nil
	}

	request := strings.TrimSpace(strings.Join(args[1:], " "))
	if request == "" {
		return intent, "", fmt.Errorf("the '%s' command needs a request, e.g. devq %s \"describe what you want\"", args[0], args[0])
	}
	return intent, request, nil
}
