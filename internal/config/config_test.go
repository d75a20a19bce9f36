package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Helper to set environment variable for test and restore after
func setEnvForTest(t *testing.T, key, value string) {
	t.Helper()
	old, existed := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

// Helper to unset environment variable for test and restore after
func unsetEnvForTest(t *testing.T, key string) {
	t.Helper()
	old, existed := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, old)
		}
	})
}

// clearAllEnvVars clears all config-related environment variables for clean tests
func clearAllEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		EnvEndpoint, EnvAPIKey, EnvAssistantID,
		EnvAPI, EnvModel, EnvTemperature, EnvMaxTokens,
	}
	for _, env := range envVars {
		unsetEnvForTest(t, env)
	}
}

// runInTempDir points HOME at a temp directory so the user's real
// config file never leaks into a test
func runInTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() {
		os.Setenv("HOME", oldHome)
	})

	return tmpDir
}

// writeConfigFile writes a key=value config file into dir and returns its path
func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// =============================================================================
// Config.Resolve() Tests
// =============================================================================

func TestConfig_Resolve_Defaults(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	cfg := NewConfig()
	cfg.APIKey = "test-key"

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, DefaultEndpoint)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", cfg.Temperature, DefaultTemperature)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.MaxTokens, DefaultMaxTokens)
	}
	if cfg.Variant() != APIChat {
		t.Errorf("Variant() = %q, want %q", cfg.Variant(), APIChat)
	}
}

func TestConfig_Resolve_MissingAPIKey(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	cfg := NewConfig()

	err := cfg.Resolve()
	if err != ErrAPIKeyNotSet {
		t.Errorf("Resolve() error = %v, want ErrAPIKeyNotSet", err)
	}
}

func TestConfig_Resolve_MissingAssistantID(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	cfg := NewConfig()
	cfg.APIKey = "test-key"
	cfg.API = APIAssistant

	err := cfg.Resolve()
	if err != ErrAssistantIDNotSet {
		t.Errorf("Resolve() error = %v, want ErrAssistantIDNotSet", err)
	}
}

func TestConfig_Resolve_AssistantIDSelectsVariant(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	cfg := NewConfig()
	cfg.APIKey = "test-key"
	cfg.AssistantID = "asst-1"

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if cfg.Variant() != APIAssistant {
		t.Errorf("Variant() = %q, want %q", cfg.Variant(), APIAssistant)
	}
}

func TestConfig_Resolve_FlagBeatsEnv(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	setEnvForTest(t, EnvEndpoint, "https://env.example.com")
	setEnvForTest(t, EnvModel, "env-model")

	cfg := NewConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = "https://flag.example.com"
	cfg.Model = "flag-model"

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	if cfg.Endpoint != "https://flag.example.com" {
		t.Errorf("Endpoint = %q, want flag value to win over env", cfg.Endpoint)
	}
	if cfg.Model != "flag-model" {
		t.Errorf("Model = %q, want flag value to win over env", cfg.Model)
	}
}

func TestConfig_Resolve_EnvBeatsFile(t *testing.T) {
	tmpDir := runInTempDir(t)
	clearAllEnvVars(t)
	setEnvForTest(t, EnvModel, "env-model")

	path := writeConfigFile(t, tmpDir, EnvModel+"=file-model\n"+EnvAPIKey+"=file-key\n")

	cfg := NewConfig()
	cfg.ConfigFile = path

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	if cfg.Model != "env-model" {
		t.Errorf("Model = %q, want env value to win over file", cfg.Model)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file value when env is unset", cfg.APIKey)
	}
}

func TestConfig_Resolve_FileBeatsDefault(t *testing.T) {
	tmpDir := runInTempDir(t)
	clearAllEnvVars(t)

	path := writeConfigFile(t, tmpDir,
		EnvAPIKey+"=file-key\n"+
			EnvModel+"=file-model\n"+
			EnvTemperature+"=0.2\n"+
			EnvMaxTokens+"=512\n")

	cfg := NewConfig()
	cfg.ConfigFile = path

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	if cfg.Model != "file-model" {
		t.Errorf("Model = %q, want %q", cfg.Model, "file-model")
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", cfg.Temperature)
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", cfg.MaxTokens)
	}
}

func TestConfig_Resolve_DefaultConfigPath(t *testing.T) {
	tmpDir := runInTempDir(t)
	clearAllEnvVars(t)

	// No explicit ConfigFile: the file in HOME must be picked up.
	writeConfigFile(t, tmpDir, EnvAPIKey+"=home-key\n")

	cfg := NewConfig()

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if cfg.APIKey != "home-key" {
		t.Errorf("APIKey = %q, want value from ~/%s", cfg.APIKey, ConfigFileName)
	}
}

func TestConfig_Resolve_EndpointTrailingSlash(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	cfg := NewConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = "https://test.example.com/"

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if cfg.Endpoint != "https://test.example.com" {
		t.Errorf("Endpoint = %q, want trailing slash removed", cfg.Endpoint)
	}
}

func TestConfig_Resolve_InvalidAPI(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)

	cfg := NewConfig()
	cfg.APIKey = "test-key"
	cfg.API = "grpc"

	err := cfg.Resolve()
	if err != ErrInvalidAPI {
		t.Errorf("Resolve() error = %v, want ErrInvalidAPI", err)
	}
}

func TestConfig_Resolve_TemperatureOutOfRange(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	setEnvForTest(t, EnvTemperature, "3.5")

	cfg := NewConfig()
	cfg.APIKey = "test-key"

	err := cfg.Resolve()
	if !errors.Is(err, ErrInvalidTemp) {
		t.Errorf("Resolve() error = %v, want ErrInvalidTemp", err)
	}
}

func TestConfig_Resolve_TemperatureNotANumber(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	setEnvForTest(t, EnvTemperature, "warm")

	cfg := NewConfig()
	cfg.APIKey = "test-key"

	err := cfg.Resolve()
	if err == nil {
		t.Fatal("Resolve() error = nil, want parse error")
	}
	if !strings.Contains(err.Error(), EnvTemperature) {
		t.Errorf("error %q should name the source %s", err, EnvTemperature)
	}
}

func TestConfig_Resolve_MaxTokensInvalid(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	setEnvForTest(t, EnvMaxTokens, "-5")

	cfg := NewConfig()
	cfg.APIKey = "test-key"

	err := cfg.Resolve()
	if !errors.Is(err, ErrInvalidMaxTokens) {
		t.Errorf("Resolve() error = %v, want ErrInvalidMaxTokens", err)
	}
}

func TestConfig_Resolve_NumericEnvValues(t *testing.T) {
	runInTempDir(t)
	clearAllEnvVars(t)
	setEnvForTest(t, EnvTemperature, "1.5")
	setEnvForTest(t, EnvMaxTokens, "4096")

	cfg := NewConfig()
	cfg.APIKey = "test-key"

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if cfg.Temperature != 1.5 {
		t.Errorf("Temperature = %v, want 1.5", cfg.Temperature)
	}
	if cfg.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", cfg.MaxTokens)
	}
}

func TestConfig_Resolve_BrokenConfigFileIgnored(t *testing.T) {
	tmpDir := runInTempDir(t)
	clearAllEnvVars(t)
	setEnvForTest(t, EnvAPIKey, "env-key")

	// Point at a directory, not a file: reading fails, Resolve continues.
	cfg := NewConfig()
	cfg.ConfigFile = tmpDir

	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v, want broken file to be ignored", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env value", cfg.APIKey)
	}
}

// =============================================================================
// Variant and URL Tests
// =============================================================================

func TestConfig_Variant(t *testing.T) {
	tests := []struct {
		name        string
		api         string
		assistantID string
		expected    string
	}{
		{"explicit chat", APIChat, "asst-1", APIChat},
		{"explicit assistant", APIAssistant, "", APIAssistant},
		{"assistant id implies assistant", "", "asst-1", APIAssistant},
		{"bare default is chat", "", "", APIChat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{API: tt.api, AssistantID: tt.assistantID}
			if got := cfg.Variant(); got != tt.expected {
				t.Errorf("Variant() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConfig_ChatURL(t *testing.T) {
	cfg := &Config{Endpoint: "https://api.example.com/v1"}

	url := cfg.ChatURL()
	expected := "https://api.example.com/v1/chat/completions"

	if url != expected {
		t.Errorf("ChatURL() = %q, want %q", url, expected)
	}
}

func TestConfig_AssistantURL(t *testing.T) {
	cfg := &Config{
		Endpoint:    "https://api.example.com/v1",
		AssistantID: "asst-42",
	}

	url := cfg.AssistantURL()
	expected := "https://api.example.com/v1/assistants/asst-42/completions"

	if url != expected {
		t.Errorf("AssistantURL() = %q, want %q", url, expected)
	}
}
