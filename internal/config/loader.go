package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	path string
}

// NewLoader creates a configuration loader for the file at path. The format
// is taken from the extension (json, yaml, yml, toml).
func NewLoader(path string) Loader {
	return &loader{
		path: path,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DOCGEN_*, plus DOCGEN_MODEL / OLLAMA_MODEL)
// 2. Config file
// 3. Default values
//
// Unlike optional settings, the config file itself is required: it is the
// only source of ignore_patterns and prompts.
func (l *loader) Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(l.path)

	// Enable environment variable overrides
	v.SetEnvPrefix("DOCGEN")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., DOCGEN_SUMMARIZER_PROVIDER)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("summarize")
	v.BindEnv("output_dir")
	v.BindEnv("diagram_format")
	v.BindEnv("workers")
	v.BindEnv("summarizer.provider")
	v.BindEnv("summarizer.endpoint")
	v.BindEnv("summarizer.timeout")
	v.BindEnv("summarizer.cache_size")
	// The model identifier is the one variable documented for end users.
	v.BindEnv("summarizer.model", "DOCGEN_MODEL", "OLLAMA_MODEL")
	v.BindEnv("summarizer.api_key", "DOCGEN_API_KEY", "GEMINI_API_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigError{Path: l.path, Err: fmt.Errorf("%w: %v", ErrUnreadableConfig, err)}
	}

	var missing []error
	if !v.IsSet("ignore_patterns") {
		missing = append(missing, ErrMissingIgnorePatterns)
	}
	if !v.IsSet("prompts") {
		missing = append(missing, ErrMissingPrompts)
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Path: l.path, Err: joinErrors(missing)}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &ConfigError{Path: l.path, Err: fmt.Errorf("failed to unmarshal config: %w", err)}
	}

	if err := Validate(cfg); err != nil {
		return nil, &ConfigError{Path: l.path, Err: err}
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("summarize", defaults.Summarize)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("diagram_format", defaults.DiagramFormat)
	v.SetDefault("workers", defaults.Workers)

	v.SetDefault("summarizer.provider", defaults.Summarizer.Provider)
	v.SetDefault("summarizer.endpoint", defaults.Summarizer.Endpoint)
	v.SetDefault("summarizer.model", defaults.Summarizer.Model)
	v.SetDefault("summarizer.api_key", defaults.Summarizer.APIKey)
	v.SetDefault("summarizer.timeout", defaults.Summarizer.Timeout)
	v.SetDefault("summarizer.cache_size", defaults.Summarizer.CacheSize)
}

// LoadConfig is a convenience function that creates a loader and loads config.
func LoadConfig(path string) (*Config, error) {
	return NewLoader(path).Load()
}
