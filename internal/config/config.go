package config

import (
	"strings"
	"time"

	"github.com/mvp-joe/project-docgen/internal/render"
	"github.com/mvp-joe/project-docgen/internal/summarize"
)

// DefaultConfigFile is read when --config is not given.
const DefaultConfigFile = "config.json"

// Config represents the complete docgen configuration.
// It is loaded from a JSON, YAML or TOML file with environment overrides.
type Config struct {
	IgnorePatterns []string          `json:"ignore_patterns" mapstructure:"ignore_patterns"` // glob patterns relative to the source dir
	Prompts        map[string]string `json:"prompts" mapstructure:"prompts"`                 // content kind -> template, "default" required
	Summarize      bool              `json:"summarize" mapstructure:"summarize"`             // enable enrichment
	OutputDir      string            `json:"output_dir" mapstructure:"output_dir"`           // empty means the working directory
	DiagramFormat  string            `json:"diagram_format" mapstructure:"diagram_format"`   // "mermaid" or "dot"
	Workers        int               `json:"workers" mapstructure:"workers"`                 // files processed concurrently
	Summarizer     SummarizerConfig  `json:"summarizer" mapstructure:"summarizer"`
}

// SummarizerConfig configures the summarization backend.
type SummarizerConfig struct {
	Provider  string        `json:"provider" mapstructure:"provider"`     // "ollama", "gemini" or "mock"
	Endpoint  string        `json:"endpoint" mapstructure:"endpoint"`     // ollama base URL
	Model     string        `json:"model" mapstructure:"model"`           // empty uses the provider default
	APIKey    string        `json:"api_key" mapstructure:"api_key"`       // gemini only
	Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`       // per-call bound
	CacheSize int           `json:"cache_size" mapstructure:"cache_size"` // 0 disables the summary cache
}

// Default returns a configuration with defaults for every optional key.
// The required keys (ignore_patterns, prompts) are left empty.
func Default() *Config {
	return &Config{
		Summarize:     true,
		DiagramFormat: string(render.DiagramMermaid),
		Workers:       1,
		Summarizer: SummarizerConfig{
			Provider:  summarize.DefaultProvider,
			Endpoint:  summarize.DefaultOllamaEndpoint,
			Timeout:   summarize.DefaultTimeout,
			CacheSize: 1000,
		},
	}
}

// SummarizeConfig converts the summarizer section into a provider config.
// The provider name is matched case-insensitively, as Validate does.
func (c *Config) SummarizeConfig() summarize.Config {
	return summarize.Config{
		Provider: strings.ToLower(c.Summarizer.Provider),
		Endpoint: c.Summarizer.Endpoint,
		Model:    c.Summarizer.Model,
		APIKey:   c.Summarizer.APIKey,
		Prompts:  summarize.Prompts(c.Prompts),
	}
}
