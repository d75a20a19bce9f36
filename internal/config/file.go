package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/vqtran/devq/internal/constants"
)

// DefaultConfigPath returns the path of the per-user config file,
// ~/.devqrc. The file uses key=value lines with the same keys as the
// environment variables, so it can also be sourced from a shell.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, constants.ConfigFileName), nil
}

// LoadConfigFile reads the config file at path, or at the default
// location when path is empty. A missing file is not an error; it
// yields an empty map.
func LoadConfigFile(path string) (map[string]string, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return map[string]string{}, err
		}
	}

	if _, err := os.Stat(path); err != nil {
		return map[string]string{}, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return map[string]string{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return values, nil
}

// Save writes the configuration to the config file at path, or at the
// default location when path is empty. Only set fields are written.
// The file is created with owner-only permissions since it may hold
// the API key.
func (c *Config) Save(path string) (string, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return "", err
		}
	}

	values := map[string]string{}
	if c.Endpoint != "" {
		values[EnvEndpoint] = c.Endpoint
	}
	if c.APIKey != "" {
		values[EnvAPIKey] = c.APIKey
	}
	if c.AssistantID != "" {
		values[EnvAssistantID] = c.AssistantID
	}
	if c.API != "" {
		values[EnvAPI] = c.API
	}
	if c.Model != "" {
		values[EnvModel] = c.Model
	}
	if c.Temperature >= 0 {
		values[EnvTemperature] = strconv.FormatFloat(c.Temperature, 'f', -1, 64)
	}
	if c.MaxTokens > 0 {
		values[EnvMaxTokens] = strconv.Itoa(c.MaxTokens)
	}

	content, err := godotenv.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, []byte(content+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
