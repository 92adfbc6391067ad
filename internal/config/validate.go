package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreadableConfig indicates the config file is missing or malformed
	ErrUnreadableConfig = errors.New("unreadable config file")

	// ErrMissingIgnorePatterns indicates the required ignore_patterns key is absent
	ErrMissingIgnorePatterns = errors.New("missing required key ignore_patterns")

	// ErrMissingPrompts indicates the required prompts key is absent or empty
	ErrMissingPrompts = errors.New("missing required key prompts")

	// ErrMissingDefaultPrompt indicates prompts has no "default" template
	ErrMissingDefaultPrompt = errors.New("missing prompts.default template")

	// ErrInvalidDiagramFormat indicates an unsupported diagram format
	ErrInvalidDiagramFormat = errors.New("invalid diagram format")

	// ErrInvalidProvider indicates an unsupported summarization provider
	ErrInvalidProvider = errors.New("invalid summarization provider")

	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidTimeout indicates a non-positive summarizer timeout
	ErrInvalidTimeout = errors.New("invalid summarizer timeout")

	// ErrInvalidCacheSize indicates a negative cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")
)

// ConfigError is a fatal configuration problem detected before any file is
// processed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if len(cfg.Prompts) == 0 {
		errs = append(errs, ErrMissingPrompts)
	} else if _, ok := cfg.Prompts["default"]; !ok {
		errs = append(errs, ErrMissingDefaultPrompt)
	}

	format := strings.ToLower(cfg.DiagramFormat)
	if format != "mermaid" && format != "dot" {
		errs = append(errs, fmt.Errorf("%w: must be 'mermaid' or 'dot', got '%s'", ErrInvalidDiagramFormat, cfg.DiagramFormat))
	}

	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if err := validateSummarizer(&cfg.Summarizer); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateSummarizer(cfg *SummarizerConfig) error {
	var errs []error

	provider := strings.ToLower(cfg.Provider)
	if provider != "ollama" && provider != "gemini" && provider != "mock" {
		errs = append(errs, fmt.Errorf("%w: must be 'ollama', 'gemini' or 'mock', got '%s'", ErrInvalidProvider, cfg.Provider))
	}

	if cfg.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidTimeout, cfg.Timeout))
	}

	if cfg.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size cannot be negative, got %d", ErrInvalidCacheSize, cfg.CacheSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into one that still matches each of
// them with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return &multiError{errs: errs}
}

type multiError struct {
	errs []error
}

func (m *multiError) Error() string {
	var msgs []string
	for _, err := range m.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (m *multiError) Unwrap() []error {
	return m.errs
}
