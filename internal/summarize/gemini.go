package summarize

import (
	"context"
	"errors"
	"strings"

	genai "google.golang.org/genai"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// geminiProvider is a thin wrapper around the official genai client.
type geminiProvider struct {
	cli     *genai.Client
	apiKey  string
	model   string
	prompts Prompts
}

func newGeminiProvider(config Config) *geminiProvider {
	modelName := config.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &geminiProvider{
		apiKey:  config.APIKey,
		model:   modelName,
		prompts: config.Prompts,
	}
}

// Initialize creates the genai client. With no API key configured the SDK
// falls back to GEMINI_API_KEY / GOOGLE_API_KEY.
func (g *geminiProvider) Initialize(ctx context.Context) error {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return err
	}
	g.cli = cli
	return nil
}

// Summarize implements Provider.
func (g *geminiProvider) Summarize(ctx context.Context, text string, level model.DetailLevel, kind model.ContentKind) (string, error) {
	if g.cli == nil {
		return "", errors.New("gemini provider not initialized")
	}

	prompt := g.prompts.Render(text, level, kind)
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", ErrEmptyResponse
	}
	return summary, nil
}

// Name implements Provider.
func (g *geminiProvider) Name() string { return "gemini:" + g.model }

// Close implements Provider.
func (g *geminiProvider) Close() error { return nil }
