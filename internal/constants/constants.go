// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout is the timeout for completion API requests (long
	// generations can take a while)
	DefaultAPITimeout = 120 * time.Second
)

// Application defaults
const (
	DefaultEndpoint    = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
)

// File and path conventions
const (
	// ConfigFileName is the per-user config file, relative to $HOME
	ConfigFileName = ".devqrc"
	// SessionLogFileName is the append-only event log, relative to the
	// working directory
	SessionLogFileName = "devq.log"
)

// MaxPromptFileLines caps how many lines of a target file are embedded
// into a prompt before truncation.
const MaxPromptFileLines = 50
