package parsers

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// Extractor projects one file's text into a structural model.
type Extractor interface {
	// Extract returns the unit for path. Source files of the supported
	// grammar that fail to parse return a *ParseError.
	Extract(ctx context.Context, path string, source []byte) (*model.SourceUnit, error)
}

// languageExtractor is implemented by each grammar-specific extractor.
type languageExtractor interface {
	Extract(ctx context.Context, filePath string, source []byte) (*model.SourceUnit, error)
}

// extensionRouter routes files to a grammar by extension and degrades to a
// content-only unit for everything else.
type extensionRouter struct {
	pyParser languageExtractor
}

// NewExtractor creates the extractor used by the pipeline.
func NewExtractor() Extractor {
	return &extensionRouter{
		pyParser: NewPythonParser(),
	}
}

// Extract implements Extractor.
func (r *extensionRouter) Extract(ctx context.Context, path string, source []byte) (*model.SourceUnit, error) {
	switch DetectLanguage(path) {
	case "python":
		return r.pyParser.Extract(ctx, path, source)
	default:
		return model.NewSourceUnit(path, path, string(source)), nil
	}
}

// DetectLanguage returns the supported grammar for path, or "" when the file
// is a non-code asset.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyi":
		return "python"
	default:
		return ""
	}
}
