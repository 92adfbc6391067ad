package pipeline

import "fmt"

// Stage names the pipeline step a file failed in.
type Stage string

const (
	StageRead    Stage = "read"
	StageOutput  Stage = "output"
	StageExtract Stage = "extract"
	StageRender  Stage = "render"
	StageWrite   Stage = "write"
)

// FileError is a per-file failure. It is reported and never stops the batch.
type FileError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("error processing %s (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
