package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvp-joe/project-docgen/internal/summarize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() fills every optional key and fails validation only for prompts
// - Load() reads JSON and YAML config files
// - Load() merges the file with defaults
// - DOCGEN_MODEL and OLLAMA_MODEL override summarizer.model
// - DOCGEN_* variables override file values
// - Load() returns ConfigError for a missing or malformed file
// - Load() reports missing ignore_patterns and prompts as ConfigError
// - An empty ignore_patterns list is accepted
// - Validate() rejects prompts without a default template
// - Validate() rejects unknown diagram formats and providers
// - Validate() rejects non-positive workers and timeouts
// - Validate() returns multiple errors for multiple invalid fields
// - A provider name accepted in any case by Validate() also builds a provider

const validJSON = `{
  "ignore_patterns": ["**/__pycache__/**", "*.pyc"],
  "prompts": {
    "default": "Summarize with {detail_level} detail:\n{code}",
    "function": "Explain this function at {detail_level} detail:\n{code}"
  }
}`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func validConfig() *Config {
	cfg := Default()
	cfg.IgnorePatterns = []string{"*.pyc"}
	cfg.Prompts = map[string]string{"default": "{code}"}
	return cfg
}

func TestDefault_ReturnsExpectedValues(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.True(t, cfg.Summarize)
	assert.Equal(t, "mermaid", cfg.DiagramFormat)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "", cfg.OutputDir)
	assert.Equal(t, "ollama", cfg.Summarizer.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.Summarizer.Endpoint)
	assert.Equal(t, "", cfg.Summarizer.Model)
	assert.Equal(t, 60*time.Second, cfg.Summarizer.Timeout)

	// Prompts are required from the file
	assert.ErrorIs(t, Validate(cfg), ErrMissingPrompts)
	assert.NoError(t, Validate(validConfig()))
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", validJSON)

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"**/__pycache__/**", "*.pyc"}, cfg.IgnorePatterns)
	assert.Equal(t, "Summarize with {detail_level} detail:\n{code}", cfg.Prompts["default"])
	assert.Contains(t, cfg.Prompts, "function")

	// Defaults fill the rest
	assert.True(t, cfg.Summarize)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "ollama", cfg.Summarizer.Provider)
	assert.Equal(t, 60*time.Second, cfg.Summarizer.Timeout)
}

func TestLoad_YAMLWithOverrides(t *testing.T) {
	path := writeConfig(t, "docgen.yaml", `
ignore_patterns:
  - "node_modules/**"
prompts:
  default: "{code}"
summarize: false
diagram_format: dot
workers: 4
output_dir: docs
summarizer:
  provider: gemini
  model: gemini-1.5-pro
  timeout: 15s
  cache_size: 10
`)

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.False(t, cfg.Summarize)
	assert.Equal(t, "dot", cfg.DiagramFormat)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "docs", cfg.OutputDir)
	assert.Equal(t, "gemini", cfg.Summarizer.Provider)
	assert.Equal(t, "gemini-1.5-pro", cfg.Summarizer.Model)
	assert.Equal(t, 15*time.Second, cfg.Summarizer.Timeout)
	assert.Equal(t, 10, cfg.Summarizer.CacheSize)
}

func TestLoad_ModelFromEnvironment(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
ignore_patterns: []
prompts:
  default: "{code}"
summarizer:
  model: from-file
`)

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Summarizer.Model)
	assert.Empty(t, cfg.IgnorePatterns)

	t.Setenv("OLLAMA_MODEL", "from-ollama-env")
	cfg, err = NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-ollama-env", cfg.Summarizer.Model)

	t.Setenv("DOCGEN_MODEL", "from-docgen-env")
	cfg, err = NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-docgen-env", cfg.Summarizer.Model)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.json", validJSON)

	t.Setenv("DOCGEN_SUMMARIZER_PROVIDER", "mock")
	t.Setenv("DOCGEN_WORKERS", "3")

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Summarizer.Provider)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(filepath.Join(t.TempDir(), "config.json")).Load()
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.ErrorIs(t, err, ErrUnreadableConfig)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.json", `{"ignore_patterns": [`)

	_, err := NewLoader(path).Load()
	assert.ErrorIs(t, err, ErrUnreadableConfig)
}

func TestLoad_MissingRequiredKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.json", `{"summarize": false}`)

	_, err := NewLoader(path).Load()
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, path, cerr.Path)
	assert.ErrorIs(t, err, ErrMissingIgnorePatterns)
	assert.ErrorIs(t, err, ErrMissingPrompts)
}

func TestLoad_MissingDefaultPrompt(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "config.json", `{"ignore_patterns": [], "prompts": {"function": "{code}"}}`)

	_, err := NewLoader(path).Load()
	assert.ErrorIs(t, err, ErrMissingDefaultPrompt)
}

func TestValidate_RejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"diagram format", func(c *Config) { c.DiagramFormat = "svg" }, ErrInvalidDiagramFormat},
		{"provider", func(c *Config) { c.Summarizer.Provider = "openai" }, ErrInvalidProvider},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"zero timeout", func(c *Config) { c.Summarizer.Timeout = 0 }, ErrInvalidTimeout},
		{"negative cache", func(c *Config) { c.Summarizer.CacheSize = -1 }, ErrInvalidCacheSize},
		{"no default prompt", func(c *Config) { c.Prompts = map[string]string{"class": "x"} }, ErrMissingDefaultPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_ReturnsMultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.DiagramFormat = "png"
	cfg.Workers = -2
	cfg.Summarizer.Provider = "bogus"

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDiagramFormat)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
	assert.ErrorIs(t, err, ErrInvalidProvider)
	assert.Contains(t, err.Error(), "validation failed:")
}

func TestSummarizeConfig(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Summarizer.Model = "llama3.1"

	sc := cfg.SummarizeConfig()
	assert.Equal(t, "ollama", sc.Provider)
	assert.Equal(t, "llama3.1", sc.Model)
	assert.Equal(t, "{code}", sc.Prompts["default"])
}

func TestSummarizeConfig_ProviderCaseInsensitive(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Summarizer.Provider = "Mock"
	require.NoError(t, Validate(cfg))

	sc := cfg.SummarizeConfig()
	assert.Equal(t, "mock", sc.Provider)

	provider, err := summarize.NewProvider(sc)
	require.NoError(t, err)
	assert.NotNil(t, provider)
}
