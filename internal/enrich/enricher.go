// Package enrich attaches natural-language summaries to a structural model.
// Enrichment is best-effort: every node is summarized independently and a
// failure leaves only that node without a summary.
package enrich

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"time"

	"github.com/mvp-joe/project-docgen/internal/model"
	"github.com/mvp-joe/project-docgen/internal/summarize"
)

// Report counts the outcome of one Enrich call.
type Report struct {
	Attempted int
	Succeeded int
	Failed    int
	Errors    []*summarize.EnrichmentError
}

// Enricher sets summary fields using a summarization provider.
type Enricher struct {
	provider summarize.Provider
	timeout  time.Duration
}

// New creates an Enricher. A non-positive timeout uses summarize.DefaultTimeout.
func New(provider summarize.Provider, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = summarize.DefaultTimeout
	}
	return &Enricher{provider: provider, timeout: timeout}
}

// Enrich attaches the file summary for level and a summary on every function,
// class and method. Structural fields are never modified.
func (e *Enricher) Enrich(ctx context.Context, unit *model.SourceUnit, level model.DetailLevel) *Report {
	report := &Report{}

	if err := e.SummarizeUnit(ctx, unit, level); err != nil {
		report.record(err)
	} else {
		report.Attempted++
		report.Succeeded++
	}

	for _, decl := range unit.Declarations() {
		if ctx.Err() != nil {
			break
		}
		summary, err := e.summarize(ctx, decl.Body, level, model.ContentKindOf(decl.Kind), decl.QualifiedName())
		if err != nil {
			report.record(err)
			continue
		}
		decl.Summary = summary
		report.Attempted++
		report.Succeeded++
	}

	return report
}

// SummarizeUnit attaches only the file-level summary for level.
func (e *Enricher) SummarizeUnit(ctx context.Context, unit *model.SourceUnit, level model.DetailLevel) error {
	summary, err := e.summarize(ctx, unit.Content, level, model.ContentFile, filepath.Base(unit.Path))
	if err != nil {
		return err
	}
	unit.SetSummary(level, summary)
	return nil
}

// summarize runs one bounded call. Errors are logged and returned as
// *summarize.EnrichmentError.
func (e *Enricher) summarize(ctx context.Context, text string, level model.DetailLevel, kind model.ContentKind, name string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	summary, err := e.provider.Summarize(callCtx, text, level, kind)
	if err == nil && summary == "" {
		err = summarize.ErrEmptyResponse
	}
	if err != nil {
		eerr := &summarize.EnrichmentError{Kind: string(kind), Name: name, Err: err}
		log.Printf("Warning: %v\n", eerr)
		return "", eerr
	}
	return summary, nil
}

func (r *Report) record(err error) {
	r.Attempted++
	r.Failed++
	var eerr *summarize.EnrichmentError
	if errors.As(err, &eerr) {
		r.Errors = append(r.Errors, eerr)
	}
}
