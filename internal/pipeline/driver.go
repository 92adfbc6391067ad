// Package pipeline discovers source files and drives each one through
// extraction, enrichment, graph building, rendering and writing. A failure
// in one file never stops the batch.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mvp-joe/project-docgen/internal/enrich"
	"github.com/mvp-joe/project-docgen/internal/graph"
	"github.com/mvp-joe/project-docgen/internal/model"
	"github.com/mvp-joe/project-docgen/internal/parsers"
	"github.com/mvp-joe/project-docgen/internal/render"
	"golang.org/x/sync/errgroup"
)

// Config holds driver configuration.
type Config struct {
	SourceRoot string
	OutputRoot string
	Kinds      model.KindSet
	Limit      int // 0 means no limit
	Workers    int // <= 1 means sequential
}

// Stats summarizes one Run.
type Stats struct {
	Discovered int
	Processed  int
	Succeeded  int
	Failed     int
	Skipped    int // previous-run artifacts found among the discovered files
	Artifacts  int
	Failures   []*FileError
	Duration   time.Duration
}

// Driver documents a batch of files.
type Driver struct {
	config    Config
	extractor parsers.Extractor
	enricher  *enrich.Enricher
	renderer  *render.Renderer
	progress  ProgressReporter

	mu    sync.Mutex
	stats *Stats
	plan  *outputPlan
}

// NewDriver creates a driver. A nil enricher disables summaries and a nil
// progress reporter disables progress output.
func NewDriver(config Config, extractor parsers.Extractor, enricher *enrich.Enricher, renderer *render.Renderer, progress ProgressReporter) *Driver {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	if len(config.Kinds) == 0 {
		config.Kinds = model.SelectKinds(false, false)
	}
	return &Driver{
		config:    config,
		extractor: extractor,
		enricher:  enricher,
		renderer:  renderer,
		progress:  progress,
	}
}

// Run documents files in order, honoring the configured limit. The returned
// error is non-nil only when the context is cancelled; per-file failures are
// reported in Stats.
func (d *Driver) Run(ctx context.Context, files []string) (*Stats, error) {
	start := time.Now()

	// Names are planned over every source so --limit does not change them.
	sources, plan := d.planOutputs(files)
	d.plan = plan
	d.stats = &Stats{Discovered: len(sources), Skipped: len(files) - len(sources)}

	selected := sources
	if d.config.Limit > 0 && d.config.Limit < len(sources) {
		selected = sources[:d.config.Limit]
	}
	d.progress.OnDiscoveryComplete(len(sources), len(selected))
	d.progress.OnFileProcessingStart(len(selected))

	var err error
	if d.config.Workers <= 1 {
		for _, path := range selected {
			if err = ctx.Err(); err != nil {
				break
			}
			d.processFile(ctx, path)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.config.Workers)
		for _, path := range selected {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				d.processFile(gctx, path)
				return nil
			})
		}
		err = g.Wait()
	}

	d.stats.Duration = time.Since(start)
	d.progress.OnComplete(d.stats)

	if err != nil {
		return d.stats, fmt.Errorf("documentation run interrupted: %w", err)
	}
	return d.stats, nil
}

// processFile runs one file through every stage and records the outcome.
func (d *Driver) processFile(ctx context.Context, path string) {
	written, ferr := d.documentFile(ctx, path)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.Processed++
	if ferr != nil {
		d.stats.Failed++
		d.stats.Failures = append(d.stats.Failures, ferr)
		log.Printf("%v\n", ferr)
		d.progress.OnFileFailed(ferr)
		return
	}
	d.stats.Succeeded++
	d.stats.Artifacts += written
	d.progress.OnFileProcessed(path, written)
}

func (d *Driver) documentFile(ctx context.Context, path string) (int, *FileError) {
	if err, ok := d.plan.conflicts[path]; ok {
		return 0, &FileError{Path: path, Stage: StageOutput, Err: err}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return 0, &FileError{Path: path, Stage: StageRead, Err: err}
	}

	unit, err := d.extractor.Extract(ctx, path, source)
	if err != nil {
		return 0, &FileError{Path: path, Stage: StageExtract, Err: err}
	}
	unit.RelPath = d.relPath(path)

	if d.enricher != nil {
		d.enricher.Enrich(ctx, unit, model.DetailHigh)
		if d.config.Kinds.Has(model.ArtifactInternal) {
			// Error already logged by the enricher.
			_ = d.enricher.SummarizeUnit(ctx, unit, model.DetailLow)
		}
	}

	g := graph.Build(unit)
	rendered := d.renderer.Render(unit, g, d.config.Kinds)

	artifacts := d.artifactsFor(unit, rendered)
	if len(artifacts) == 0 {
		return 0, &FileError{Path: path, Stage: StageRender, Err: fmt.Errorf("no artifacts rendered")}
	}
	if err := writeArtifacts(artifacts); err != nil {
		return 0, &FileError{Path: path, Stage: StageWrite, Err: err}
	}
	return len(artifacts), nil
}

// artifactsFor binds rendered text to destination paths in kind order.
func (d *Driver) artifactsFor(unit *model.SourceUnit, rendered map[model.ArtifactKind]string) []model.Artifact {
	dir := d.outputDir(unit.Path)
	stem, ok := d.plan.stems[unit.Path]
	if !ok {
		stem = defaultStem(unit.Path)
	}

	var artifacts []model.Artifact
	for _, kind := range d.config.Kinds {
		content, ok := rendered[kind]
		if !ok {
			continue
		}
		artifacts = append(artifacts, model.Artifact{
			Kind:    kind,
			Path:    filepath.Join(dir, d.renderer.FileName(stem, kind)),
			Content: content,
		})
	}
	return artifacts
}

// relPath returns path relative to the source root in slash form. Paths
// outside the root keep only their base name.
func (d *Driver) relPath(path string) string {
	rel, err := filepath.Rel(d.config.SourceRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
