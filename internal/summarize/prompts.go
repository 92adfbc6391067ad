package summarize

import (
	"strings"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// DefaultPromptKey is the template used when no kind-specific template exists.
const DefaultPromptKey = "default"

// Template placeholders.
const (
	PlaceholderDetailLevel = "{detail_level}"
	PlaceholderCode        = "{code}"
)

// Prompts maps a content kind ("file", "function", "class", "method") to a
// template string. It must contain DefaultPromptKey.
type Prompts map[string]string

// Render builds the prompt for kind, falling back to the default template.
func (p Prompts) Render(text string, level model.DetailLevel, kind model.ContentKind) string {
	tmpl, ok := p[string(kind)]
	if !ok {
		tmpl = p[DefaultPromptKey]
	}
	r := strings.NewReplacer(
		PlaceholderDetailLevel, string(level),
		PlaceholderCode, text,
	)
	return r.Replace(tmpl)
}
