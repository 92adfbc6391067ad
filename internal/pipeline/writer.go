package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// writeArtifacts writes a file's artifacts all-or-nothing: every artifact is
// first written to a temp file next to its destination, then all are renamed
// into place. On failure the temp files are removed and nothing is renamed.
func writeArtifacts(artifacts []model.Artifact) error {
	type staged struct {
		tmp  string
		dest string
	}
	var pending []staged

	cleanup := func() {
		for _, s := range pending {
			os.Remove(s.tmp)
		}
	}

	for _, a := range artifacts {
		dir := filepath.Dir(a.Path)
		// MkdirAll treats an existing directory as success, which keeps
		// concurrent workers from racing on shared output directories.
		if err := os.MkdirAll(dir, 0755); err != nil {
			cleanup()
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		f, err := os.CreateTemp(dir, "."+filepath.Base(a.Path)+".*.tmp")
		if err != nil {
			cleanup()
			return fmt.Errorf("failed to create %s: %w", a.Path, err)
		}
		pending = append(pending, staged{tmp: f.Name(), dest: a.Path})

		if _, err := f.WriteString(a.Content); err != nil {
			f.Close()
			cleanup()
			return fmt.Errorf("failed to write %s: %w", a.Path, err)
		}
		if err := f.Close(); err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", a.Path, err)
		}
		if err := os.Chmod(f.Name(), 0644); err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", a.Path, err)
		}
	}

	for i, s := range pending {
		if err := os.Rename(s.tmp, s.dest); err != nil {
			for _, rest := range pending[i:] {
				os.Remove(rest.tmp)
			}
			return fmt.Errorf("failed to write %s: %w", s.dest, err)
		}
	}

	return nil
}
