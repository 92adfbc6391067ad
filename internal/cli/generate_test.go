package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/mvp-joe/project-docgen/internal/config"
	"github.com/mvp-joe/project-docgen/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for generate:
// - A batch with one unparseable file documents the others and exits cleanly
// - Ignore patterns from the config are applied
// - --internal writes internal docs and diagrams only
// - --external writes only public docs
// - The mock summarizer fills summaries into the docs
// - An unusable summarizer degrades to structure-only docs
// - Missing config and missing source dir are catastrophic errors
// - Output dir: flag, then config, then working directory
// - The progress reporter prints the succeeded/failed summary

const sampleModule = `"""Shapes."""


class Square:
    def area(self):
        return self.side ** 2


def make_square(side):
    return Square()
`

func setupProject(t *testing.T, configBody string) (src, out, cfgPath string) {
	t.Helper()
	root := t.TempDir()
	src = filepath.Join(root, "src")
	out = filepath.Join(root, "out")

	files := map[string]string{
		"shapes.py":          sampleModule,
		"broken.py":          "def broken(:\n",
		"pkg/util.py":        "def helper():\n    return 1\n",
		"build/generated.py": "x = 1\n",
		"pkg/__init__.py":    "",
	}
	for rel, content := range files {
		path := filepath.Join(src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	cfgPath = filepath.Join(root, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configBody), 0644))
	return src, out, cfgPath
}

const baseConfig = `{
  "ignore_patterns": ["build/**"],
  "prompts": {"default": "Summarize at {detail_level} detail:\n{code}"},
  "summarize": false
}`

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

func TestGenerate_BatchWithFailure(t *testing.T) {
	t.Parallel()

	src, out, cfgPath := setupProject(t, baseConfig)
	var buf bytes.Buffer

	stats, err := generate(context.Background(), options{
		SourceDir:  src,
		ConfigPath: cfgPath,
		OutputDir:  out,
		Quiet:      true,
		Out:        &buf,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Discovered)
	assert.Equal(t, 3, stats.Succeeded)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, filepath.Join(src, "broken.py"), stats.Failures[0].Path)
	assert.Empty(t, buf.String())

	assert.Equal(t, []string{
		"pkg/__init__.md", "pkg/__init___internal.md",
		"pkg/util.md", "pkg/util_diagram.mmd", "pkg/util_internal.md",
		"shapes.md", "shapes_diagram.mmd", "shapes_internal.md",
	}, listFiles(t, out))
}

func TestGenerate_InternalOnly(t *testing.T) {
	t.Parallel()

	src, out, cfgPath := setupProject(t, baseConfig)

	_, err := generate(context.Background(), options{
		SourceDir: src, ConfigPath: cfgPath, OutputDir: out, Quiet: true,
		Internal: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"pkg/__init___internal.md",
		"pkg/util_diagram.mmd", "pkg/util_internal.md",
		"shapes_diagram.mmd", "shapes_internal.md",
	}, listFiles(t, out))
}

func TestGenerate_ExternalOnly(t *testing.T) {
	t.Parallel()

	src, out, cfgPath := setupProject(t, baseConfig)

	_, err := generate(context.Background(), options{
		SourceDir: src, ConfigPath: cfgPath, OutputDir: out, Quiet: true,
		External: true, Limit: 1,
	})
	require.NoError(t, err)

	// Discovery order: broken.py, pkg/__init__.py, ...; the first file fails.
	assert.NoDirExists(t, filepath.Join(out, "pkg"))
	assert.NoFileExists(t, filepath.Join(out, "shapes.md"))
}

func TestGenerate_MockSummaries(t *testing.T) {
	t.Parallel()

	src, out, cfgPath := setupProject(t, `{
  "ignore_patterns": ["build/**", "broken.py"],
  "prompts": {"default": "{code}"},
  "summarizer": {"provider": "mock", "cache_size": 16}
}`)
	var buf bytes.Buffer

	stats, err := generate(context.Background(), options{
		SourceDir: src, ConfigPath: cfgPath, OutputDir: out, Out: &buf,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Failed)

	external, err := os.ReadFile(filepath.Join(out, "shapes.md"))
	require.NoError(t, err)
	assert.Contains(t, string(external), "## Summary\n\nfile summary (high detail) ")
	assert.Contains(t, string(external), "- `make_square`: function summary (high detail) ")
	assert.Contains(t, string(external), "- `Square`: class summary (high detail) ")

	internal, err := os.ReadFile(filepath.Join(out, "shapes_internal.md"))
	require.NoError(t, err)
	assert.Contains(t, string(internal), "## Detailed Summary\n\nfile summary (low detail) ")

	assert.Contains(t, buf.String(), "✓ Summarizing with mock")
	assert.Contains(t, buf.String(), "✓ 3 succeeded, 0 failed")
	assert.Contains(t, buf.String(), "Documentation generation complete. Output directory: "+out)
}

func TestGenerate_UnusableSummarizerDegrades(t *testing.T) {
	t.Parallel()

	src, out, cfgPath := setupProject(t, `{
  "ignore_patterns": ["build/**"],
  "prompts": {"default": "{code}"},
  "summarizer": {"provider": "ollama", "endpoint": "ftp://localhost:1"}
}`)

	stats, err := generate(context.Background(), options{
		SourceDir: src, ConfigPath: cfgPath, OutputDir: out, Quiet: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Succeeded)

	external, err := os.ReadFile(filepath.Join(out, "shapes.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(external), "## Summary")
}

func TestGenerate_MissingConfig(t *testing.T) {
	t.Parallel()

	src, out, _ := setupProject(t, baseConfig)

	_, err := generate(context.Background(), options{
		SourceDir: src, ConfigPath: filepath.Join(t.TempDir(), "nope.json"), OutputDir: out, Quiet: true,
	})
	require.Error(t, err)

	var cerr *config.ConfigError
	assert.True(t, errors.As(err, &cerr))
	assert.NoDirExists(t, out)
}

func TestGenerate_MissingSourceDir(t *testing.T) {
	t.Parallel()

	_, out, cfgPath := setupProject(t, baseConfig)

	_, err := generate(context.Background(), options{
		SourceDir: filepath.Join(t.TempDir(), "missing"), ConfigPath: cfgPath, OutputDir: out, Quiet: true,
	})
	assert.Error(t, err)
}

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := resolveOutputDir("", "")
	require.NoError(t, err)
	assert.Equal(t, wd, got)

	got, err = resolveOutputDir("", "docs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "docs"), got)

	got, err = resolveOutputDir("/tmp/flag", "docs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/tmp/flag"), got)
}

func TestCLIProgressReporter_Summary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewCLIProgressReporter(&buf)

	r.OnFileProcessingStart(3)
	r.OnFileProcessed("a.py", 3)
	r.OnFileFailed(&pipeline.FileError{Path: "b.py", Stage: pipeline.StageExtract, Err: errors.New("boom")})
	r.OnFileProcessed("c.py", 3)
	r.OnComplete(&pipeline.Stats{
		Succeeded: 2, Failed: 1, Artifacts: 6, Duration: 1500 * time.Millisecond,
		Failures: []*pipeline.FileError{{Path: "b.py", Stage: pipeline.StageExtract, Err: errors.New("boom")}},
	})

	assert.Contains(t, buf.String(), "✓ 2 succeeded, 1 failed (6 artifacts in 1.5s)\n")
	assert.Contains(t, buf.String(), "  ✗ b.py (extract): boom\n")
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}
