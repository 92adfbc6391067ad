package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// Provider defines the summarization contract consumed by the enricher:
// summarize(text, detail_level, kind) -> text. Calls are fallible and
// best-effort; callers bound them with a context deadline.
type Provider interface {
	// Initialize prepares the provider (client construction, credential checks).
	// Must be called before Summarize().
	Initialize(ctx context.Context) error

	// Summarize returns a natural-language description of text.
	Summarize(ctx context.Context, text string, level model.DetailLevel, kind model.ContentKind) (string, error)

	// Name identifies the backend and model, e.g. "ollama:llama3".
	Name() string

	// Close releases any resources held by the provider.
	Close() error
}

// Default backend settings.
const (
	DefaultProvider       = "ollama"
	DefaultOllamaEndpoint = "http://localhost:11434"
	DefaultOllamaModel    = "llama3"
	DefaultGeminiModel    = "gemini-2.0-flash"
	DefaultTimeout        = 60 * time.Second
)

// Config contains configuration for creating a summarization provider.
type Config struct {
	// Provider specifies the backend ("ollama", "gemini", "mock")
	Provider string

	// Endpoint is the base URL of the backend (ollama only)
	Endpoint string

	// Model selects the backend model; empty uses the backend default
	Model string

	// APIKey for cloud backends; empty lets the SDK read its own environment
	APIKey string

	// Prompts renders prompt templates per content kind
	Prompts Prompts
}

// NewProvider creates a summarization provider based on the configuration.
func NewProvider(config Config) (Provider, error) {
	switch config.Provider {
	case "ollama", "": // empty defaults to ollama
		return newOllamaProvider(config), nil
	case "gemini":
		return newGeminiProvider(config), nil
	case "mock":
		return newMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported summarization provider: %s (supported: ollama, gemini, mock)", config.Provider)
	}
}
