package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vqtran/devq/internal/display"
	"github.com/vqtran/devq/internal/logging"
	"github.com/vqtran/devq/internal/prompts"
	"github.com/vqtran/devq/internal/workspace"
)

// runRequest drives one request through the pipeline: collect
// workspace context, build the prompt pair, send it, decode, print.
// The interactive loop calls this too, once per input line.
func (app *App) runRequest(intent prompts.Intent, request string) error {
	cfg := app.cfg

	logger := logging.DefaultLogger.WithFields(logging.Fields{
		"intent": string(intent),
		"api":    cfg.Variant(),
	})

	logger.Debug("collecting workspace context", logging.Fields{"dir": cfg.Dir})
	wsContext := workspace.Collect(cfg.Dir)

	systemText, userText := prompts.Build(intent, request, cfg.Files, cfg.Language, wsContext)
	logger.Debug("prompt built", logging.Fields{
		"system_len": len(systemText),
		"user_len":   len(userText),
		"files":      len(cfg.Files),
	})

	if cfg.DryRun {
		display.ShowNotice(fmt.Sprintf("dry run: nothing sent to %s", app.client.URL()))
		display.ShowHeading("System prompt")
		fmt.Println(systemText)
		fmt.Println()
		display.ShowHeading("User prompt")
		fmt.Println(userText)
		app.sessionLog.Infof("dry run: %s request not sent", intent)
		return nil
	}

	if intent.Mutating() && !cfg.AutoConfirm {
		question := fmt.Sprintf("Send '%s' request to %s?", intent, app.client.URL())
		if !display.AskConfirmation(question) {
			display.ShowNotice("request not sent")
			app.sessionLog.Infof("%s request declined by user", intent)
			return nil
		}
	}

	app.sessionLog.Infof("%s request: %s", intent, request)

	sp := display.NewSpinner("Thinking...")
	sp.Start()
	start := time.Now()
	result, err := app.client.Complete(context.Background(), systemText, userText)
	sp.Stop()

	if err != nil {
		app.sessionLog.Errorf("%s request failed: %v", intent, err)
		return err
	}

	app.sessionLog.Infof("%s request completed in %s", intent, time.Since(start).Round(time.Millisecond))

	if result.NoContent {
		// Sentinel text goes to stdout like any reply; the raw body
		// goes to stderr so it can be inspected without polluting
		// piped output.
		display.ShowContent(result.Text)
		fmt.Fprintln(os.Stderr, result.RawBody)
		app.sessionLog.Errorf("%s response had no recognizable content field", intent)
		return nil
	}

	if display.IsTerminal() {
		display.ShowContentRendered(result.Text)
	} else {
		display.ShowContent(result.Text)
	}

	if intent.Mutating() && strings.Contains(result.Text, "```") {
		notice := "The response contains code blocks. Apply the suggested changes manually; no files were modified."
		if cfg.Backup {
			notice += " Back up the target files before editing."
		}
		display.ShowNotice(notice)
	}

	return nil
}
