package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/vqtran/devq/internal/config"
	"github.com/vqtran/devq/internal/display"
)

// runSetup walks through the settings interactively and writes them to
// the config file. An empty API key answer is not stored; the key can
// stay in the environment instead.
func (app *App) runSetup() error {
	fmt.Println("devq setup")
	fmt.Println("Press Enter to keep the value shown in brackets.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	cfg := &config.Config{
		Endpoint:    askString(reader, "API endpoint", config.DefaultEndpoint),
		APIKey:      askSecret(reader, "API key"),
		AssistantID: askString(reader, "Assistant id (empty for the chat API)", ""),
		Model:       askString(reader, "Default model", config.DefaultModel),
		Temperature: askFloat(reader, "Default temperature", config.DefaultTemperature),
		MaxTokens:   askInt(reader, "Default max tokens", config.DefaultMaxTokens),
	}

	path, err := cfg.Save(app.cfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("Saved to %s\n", path)
	if cfg.APIKey == "" {
		display.ShowNotice("No API key stored. Set " + config.EnvAPIKey + " before running requests.")
	}
	return nil
}

// askString prompts for a value, returning current when the answer is
// empty or input ends.
func askString(reader *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// askSecret prompts without echoing when stdin is a terminal.
func askSecret(reader *bufio.Reader, label string) string {
	fmt.Printf("%s (input hidden): ", label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// askFloat prompts until it gets a parseable number.
func askFloat(reader *bufio.Reader, label string, current float64) float64 {
	for {
		raw := askString(reader, label, strconv.FormatFloat(current, 'g', -1, 64))
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			display.ShowError("not a number, try again")
			continue
		}
		return v
	}
}

// askInt prompts until it gets a parseable integer.
func askInt(reader *bufio.Reader, label string, current int) int {
	for {
		raw := askString(reader, label, strconv.Itoa(current))
		v, err := strconv.Atoi(raw)
		if err != nil {
			display.ShowError("not a whole number, try again")
			continue
		}
		return v
	}
}
