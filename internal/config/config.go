package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vqtran/devq/internal/constants"
)

// Environment variable names
const (
	// Connection settings
	EnvEndpoint    = "DEVQ_ENDPOINT"
	EnvAPIKey      = "DEVQ_API_KEY"
	EnvAssistantID = "DEVQ_ASSISTANT_ID"

	// API variant selection
	EnvAPI = "DEVQ_API"

	// Generation settings
	EnvModel       = "DEVQ_MODEL"
	EnvTemperature = "DEVQ_TEMPERATURE"
	EnvMaxTokens   = "DEVQ_MAX_TOKENS"
)

// API variants
const (
	// APIChat is the generic chat-completions wire shape
	APIChat = "chat"
	// APIAssistant is the assistant-completions wire shape; it requires
	// an assistant id
	APIAssistant = "assistant"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultEndpoint    = constants.DefaultEndpoint
	DefaultModel       = constants.DefaultModel
	DefaultTemperature = constants.DefaultTemperature
	DefaultMaxTokens   = constants.DefaultMaxTokens
	DefaultAPITimeout  = constants.DefaultAPITimeout
	ConfigFileName     = constants.ConfigFileName
)

// Errors
var (
	ErrEndpointNotSet    = errors.New("endpoint not set. Set DEVQ_ENDPOINT, use --endpoint, or run 'devq --setup'")
	ErrAPIKeyNotSet      = errors.New("API key not set. Set DEVQ_API_KEY, use --api-key, or run 'devq --setup'")
	ErrAssistantIDNotSet = errors.New("assistant id not set. The assistant API requires one: set DEVQ_ASSISTANT_ID or use --assistant")
	ErrInvalidAPI        = errors.New("invalid API variant. Use 'chat' or 'assistant'")
	ErrInvalidTemp       = errors.New("temperature must be between 0.0 and 2.0")
	ErrInvalidMaxTokens  = errors.New("max-tokens must be a positive integer")
)

// Config holds the application configuration.
//
// It is populated in three steps: CLI flags are applied by the cmd
// package, Resolve fills everything still unset from the environment,
// the config file, and built-in defaults (in that order), then checks
// required settings. After Resolve the value is treated as read-only.
type Config struct {
	// Connection settings
	Endpoint    string
	APIKey      string
	AssistantID string
	API         string // "chat", "assistant", or "" (auto-detect)

	// Generation settings
	Model       string
	Temperature float64 // 0.0-2.0; negative means unset
	MaxTokens   int     // 0 means unset

	// Request shaping
	Dir      string   // directory for workspace context collection
	Files    []string // target files embedded into the prompt
	Language string   // language hint appended to the prompt

	// Flags
	Verbose       bool
	AutoConfirm   bool
	DryRun        bool
	Backup        bool
	ShowWorkspace bool

	// ConfigFile overrides the default ~/.devqrc path when set
	ConfigFile string
}

// NewConfig creates a new Config with all values unset
func NewConfig() *Config {
	return &Config{
		Temperature: -1,
		Dir:         ".",
	}
}

// Resolve fills unset fields and validates the result.
//
// Precedence, highest first: CLI flag (already applied by the caller),
// environment variable, config file, built-in default. Config file read
// errors are silently ignored so a broken file never blocks env or flag
// based usage.
func (c *Config) Resolve() error {
	file, err := LoadConfigFile(c.ConfigFile)
	if err != nil {
		file = map[string]string{}
	}

	// Endpoint
	if c.Endpoint == "" {
		c.Endpoint = os.Getenv(EnvEndpoint)
	}
	if c.Endpoint == "" {
		c.Endpoint = file[EnvEndpoint]
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")

	// API key
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.APIKey == "" {
		c.APIKey = file[EnvAPIKey]
	}
	c.APIKey = strings.TrimSpace(c.APIKey)

	// Assistant id
	if c.AssistantID == "" {
		c.AssistantID = os.Getenv(EnvAssistantID)
	}
	if c.AssistantID == "" {
		c.AssistantID = file[EnvAssistantID]
	}
	c.AssistantID = strings.TrimSpace(c.AssistantID)

	// API variant
	if c.API == "" {
		c.API = os.Getenv(EnvAPI)
	}
	if c.API == "" {
		c.API = file[EnvAPI]
	}
	c.API = strings.ToLower(strings.TrimSpace(c.API))
	if c.API != "" && c.API != APIChat && c.API != APIAssistant {
		return ErrInvalidAPI
	}

	// Model
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.Model == "" {
		c.Model = file[EnvModel]
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}

	// Temperature
	if c.Temperature < 0 {
		if err := c.applyTemperature(os.Getenv(EnvTemperature), "environment variable "+EnvTemperature); err != nil {
			return err
		}
	}
	if c.Temperature < 0 {
		if err := c.applyTemperature(file[EnvTemperature], "config file key "+EnvTemperature); err != nil {
			return err
		}
	}
	if c.Temperature < 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Temperature > 2.0 {
		return ErrInvalidTemp
	}

	// Max tokens
	if c.MaxTokens == 0 {
		if err := c.applyMaxTokens(os.Getenv(EnvMaxTokens), "environment variable "+EnvMaxTokens); err != nil {
			return err
		}
	}
	if c.MaxTokens == 0 {
		if err := c.applyMaxTokens(file[EnvMaxTokens], "config file key "+EnvMaxTokens); err != nil {
			return err
		}
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.MaxTokens < 0 {
		return ErrInvalidMaxTokens
	}

	// Required settings. Checked last so the error names the setting
	// that is still missing after every source was consulted.
	if c.Endpoint == "" {
		return ErrEndpointNotSet
	}
	if c.APIKey == "" {
		return ErrAPIKeyNotSet
	}
	if c.Variant() == APIAssistant && c.AssistantID == "" {
		return ErrAssistantIDNotSet
	}

	return nil
}

// applyTemperature parses and sets the temperature from a raw string.
// An empty value leaves the field unset.
func (c *Config) applyTemperature(raw, source string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid temperature %q in %s: %w", raw, source, err)
	}
	if t < 0 || t > 2.0 {
		return ErrInvalidTemp
	}
	c.Temperature = t
	return nil
}

// applyMaxTokens parses and sets the token limit from a raw string.
// An empty value leaves the field unset.
func (c *Config) applyMaxTokens(raw, source string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid max-tokens %q in %s: %w", raw, source, err)
	}
	if n <= 0 {
		return ErrInvalidMaxTokens
	}
	c.MaxTokens = n
	return nil
}

// Variant returns the effective API variant. An explicit setting wins;
// otherwise the presence of an assistant id selects the assistant shape.
func (c *Config) Variant() string {
	if c.API != "" {
		return c.API
	}
	if c.AssistantID != "" {
		return APIAssistant
	}
	return APIChat
}

// ChatURL builds the full URL for the chat-completions shape
func (c *Config) ChatURL() string {
	return c.Endpoint + "/chat/completions"
}

// AssistantURL builds the full URL for the assistant-completions shape
func (c *Config) AssistantURL() string {
	return fmt.Sprintf("%s/assistants/%s/completions", c.Endpoint, c.AssistantID)
}
