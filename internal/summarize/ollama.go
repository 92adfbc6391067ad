package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// ollamaProvider calls an Ollama server's /api/generate endpoint.
type ollamaProvider struct {
	endpoint string
	model    string
	prompts  Prompts
	client   *http.Client
}

func newOllamaProvider(config Config) *ollamaProvider {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultOllamaEndpoint
	}
	modelName := config.Model
	if modelName == "" {
		modelName = DefaultOllamaModel
	}
	return &ollamaProvider{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    modelName,
		prompts:  config.Prompts,
		// Deadlines come from the caller's context
		client: &http.Client{},
	}
}

// Initialize validates the endpoint. Reachability is not checked: an
// unreachable server only costs the summaries.
func (p *ollamaProvider) Initialize(ctx context.Context) error {
	u, err := url.Parse(p.endpoint)
	if err != nil {
		return fmt.Errorf("invalid ollama endpoint %q: %w", p.endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid ollama endpoint %q: scheme must be http or https", p.endpoint)
	}
	return nil
}

// generateRequest represents the JSON request body for /api/generate.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse represents the non-streaming /api/generate response.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Summarize implements Provider.
func (p *ollamaProvider) Summarize(ctx context.Context, text string, level model.DetailLevel, kind model.ContentKind) (string, error) {
	reqBody := generateRequest{
		Model:  p.model,
		Prompt: p.prompts.Render(text, level, kind),
		Stream: false,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if genResp.Error != "" {
			return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, genResp.Error)
		}
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	summary := strings.TrimSpace(genResp.Response)
	if summary == "" {
		return "", ErrEmptyResponse
	}
	return summary, nil
}

// Name implements Provider.
func (p *ollamaProvider) Name() string {
	return "ollama:" + p.model
}

// Close implements Provider.
func (p *ollamaProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
