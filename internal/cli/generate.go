package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/project-docgen/internal/config"
	"github.com/mvp-joe/project-docgen/internal/enrich"
	"github.com/mvp-joe/project-docgen/internal/model"
	"github.com/mvp-joe/project-docgen/internal/parsers"
	"github.com/mvp-joe/project-docgen/internal/pipeline"
	"github.com/mvp-joe/project-docgen/internal/render"
	"github.com/mvp-joe/project-docgen/internal/summarize"
)

// options are the resolved command-line inputs of one run.
type options struct {
	SourceDir   string
	ConfigPath  string
	Internal    bool
	External    bool
	Limit       int
	OutputDir   string
	Quiet       bool
	NoSummarize bool
	Out         io.Writer
}

// generate runs a full documentation batch. Only catastrophic problems
// (configuration, source dir, discovery, interruption) are returned; per-file
// failures are reported and counted in the stats.
func generate(ctx context.Context, opts options) (*pipeline.Stats, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	sourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", opts.SourceDir)
	}

	outputDir, err := resolveOutputDir(opts.OutputDir, cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	var enricher *enrich.Enricher
	if cfg.Summarize && !opts.NoSummarize {
		provider, err := newSummarizer(ctx, cfg)
		if err != nil {
			// Summaries are best-effort; structure is still documented.
			log.Printf("Warning: summaries disabled: %v\n", err)
		} else {
			defer provider.Close()
			enricher = enrich.New(provider, cfg.Summarizer.Timeout)
			if !opts.Quiet {
				fmt.Fprintf(opts.Out, "✓ Summarizing with %s\n", provider.Name())
			}
		}
	}

	discovery, err := pipeline.NewFileDiscovery(sourceDir, cfg.IgnorePatterns, outputDir)
	if err != nil {
		return nil, fmt.Errorf("invalid ignore pattern: %w", err)
	}
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	var progress pipeline.ProgressReporter = &pipeline.NoOpProgressReporter{}
	if !opts.Quiet {
		progress = NewCLIProgressReporter(opts.Out)
	}

	renderer := render.New(render.Options{
		DiagramFormat: render.DiagramFormat(strings.ToLower(cfg.DiagramFormat)),
	})

	driver := pipeline.NewDriver(pipeline.Config{
		SourceRoot: sourceDir,
		OutputRoot: outputDir,
		Kinds:      model.SelectKinds(opts.Internal, opts.External),
		Limit:      opts.Limit,
		Workers:    cfg.Workers,
	}, parsers.NewExtractor(), enricher, renderer, progress)

	stats, err := driver.Run(ctx, files)
	if err != nil {
		return stats, err
	}

	if !opts.Quiet {
		fmt.Fprintf(opts.Out, "Documentation generation complete. Output directory: %s\n", outputDir)
	}
	return stats, nil
}

// newSummarizer builds and initializes the configured provider, wrapped in
// the in-process summary cache when enabled.
func newSummarizer(ctx context.Context, cfg *config.Config) (summarize.Provider, error) {
	provider, err := summarize.NewProvider(cfg.SummarizeConfig())
	if err != nil {
		return nil, err
	}
	if err := provider.Initialize(ctx); err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to initialize %s: %w", provider.Name(), err)
	}

	if cfg.Summarizer.CacheSize > 0 {
		cached, err := summarize.NewCachedProvider(provider, cfg.Summarizer.CacheSize)
		if err != nil {
			provider.Close()
			return nil, err
		}
		return cached, nil
	}
	return provider, nil
}

// resolveOutputDir picks the flag, then the config value, then the working
// directory.
func resolveOutputDir(flagValue, configValue string) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = configValue
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}
	return abs, nil
}
