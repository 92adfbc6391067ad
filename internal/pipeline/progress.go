package pipeline

// ProgressReporter provides callbacks for reporting documentation progress.
// Implementations can display progress bars, log messages, or remain silent.
// Callbacks may be invoked from worker goroutines when Workers > 1.
type ProgressReporter interface {
	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(totalFiles, selectedFiles int)

	// OnFileProcessingStart is called before processing files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after a file's artifacts were written.
	OnFileProcessed(fileName string, artifacts int)

	// OnFileFailed is called when a file could not be documented.
	OnFileFailed(err *FileError)

	// OnComplete is called when the batch finishes.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryComplete(totalFiles, selectedFiles int) {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int)              {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string, artifacts int)    {}
func (n *NoOpProgressReporter) OnFileFailed(err *FileError)                       {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)                           {}
