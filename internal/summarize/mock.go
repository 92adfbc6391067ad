package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// mockProvider is a test implementation that returns deterministic summaries.
type mockProvider struct{}

// newMockProvider creates a mock summarization provider for testing and dry runs.
func newMockProvider() Provider {
	return &mockProvider{}
}

func (p *mockProvider) Initialize(ctx context.Context) error { return nil }

// Summarize derives a stable summary from the request, so repeated runs
// produce identical artifacts.
func (p *mockProvider) Summarize(ctx context.Context, text string, level model.DetailLevel, kind model.ContentKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	hash := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s summary (%s detail) %s", kind, level, hex.EncodeToString(hash[:4])), nil
}

func (p *mockProvider) Name() string { return "mock" }

// Close is a no-op for mock provider.
func (p *mockProvider) Close() error { return nil }
