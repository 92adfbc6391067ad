package cli

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/mvp-joe/project-docgen/internal/pipeline"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements pipeline.ProgressReporter with a progress bar.
type CLIProgressReporter struct {
	out     io.Writer
	mu      sync.Mutex
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{
		out: out,
	}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles, selectedFiles int) {
	if selectedFiles < totalFiles {
		log.Printf("Discovered %s files, processing the first %s\n", formatNumber(totalFiles), formatNumber(selectedFiles))
		return
	}
	log.Printf("Discovered %s files\n", formatNumber(totalFiles))
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Documenting files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string, artifacts int) {
	c.advance()
}

func (c *CLIProgressReporter) OnFileFailed(err *pipeline.FileError) {
	c.advance()
}

func (c *CLIProgressReporter) advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *pipeline.Stats) {
	c.mu.Lock()
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}
	c.mu.Unlock()

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "✓ %s succeeded, %s failed (%s artifacts in %.1fs)\n",
		formatNumber(stats.Succeeded), formatNumber(stats.Failed),
		formatNumber(stats.Artifacts), stats.Duration.Seconds())
	for _, f := range stats.Failures {
		fmt.Fprintf(c.out, "  ✗ %s (%s): %v\n", f.Path, f.Stage, f.Err)
	}
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
