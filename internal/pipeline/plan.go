package pipeline

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// headSize is how much of an existing file is read to recognize a previous artifact.
const headSize = 512

// outputPlan assigns every source its artifact stem before anything is
// written, so no two sources share a destination and no discovered file is
// overwritten.
type outputPlan struct {
	stems     map[string]string // source path -> artifact base name
	conflicts map[string]error  // source path -> reason it cannot be written
}

// planOutputs separates artifacts left by a previous run (output root inside
// the source tree) from real sources and reserves destinations for the rest.
// A stem shared by two sources in one directory, or one whose artifacts
// would land on a discovered file, falls back to the full file name
// (util.py.md, util.pyi.md). Anything still clashing is a conflict.
func (d *Driver) planOutputs(files []string) ([]string, *outputPlan) {
	discovered := make(map[string]bool, len(files))
	for _, f := range files {
		discovered[filepath.Clean(f)] = true
	}

	previous := make(map[string]bool)
	for _, f := range files {
		name := filepath.Base(f)
		for _, stem := range []string{defaultStem(f), name} {
			for _, dest := range d.destinations(f, stem) {
				if dest.path == filepath.Clean(f) || !discovered[dest.path] || previous[dest.path] {
					continue
				}
				if d.renderer.IsGenerated(dest.kind, name, readHead(dest.path)) {
					previous[dest.path] = true
				}
			}
		}
	}

	var sources []string
	sourceSet := make(map[string]bool, len(files))
	for _, f := range files {
		if previous[filepath.Clean(f)] {
			continue
		}
		sources = append(sources, f)
		sourceSet[filepath.Clean(f)] = true
	}
	if skipped := len(files) - len(sources); skipped > 0 {
		log.Printf("Skipping %d artifact(s) from a previous run found in the source tree\n", skipped)
	}

	stemCount := make(map[string]int)
	for _, f := range sources {
		stemCount[d.outputDir(f)+"\x00"+defaultStem(f)]++
	}

	p := &outputPlan{
		stems:     make(map[string]string, len(sources)),
		conflicts: make(map[string]error),
	}
	claimed := make(map[string]string)
	for _, f := range sources {
		stem := defaultStem(f)
		if stemCount[d.outputDir(f)+"\x00"+stem] > 1 || hitsAny(d.destinations(f, stem), sourceSet) {
			stem = filepath.Base(f)
		}

		dests := d.destinations(f, stem)
		var conflict error
		for _, dest := range dests {
			if sourceSet[dest.path] {
				conflict = fmt.Errorf("output %s would overwrite a source file", dest.path)
				break
			}
			if owner, ok := claimed[dest.path]; ok {
				conflict = fmt.Errorf("output %s is already produced for %s", dest.path, owner)
				break
			}
		}
		if conflict != nil {
			p.conflicts[f] = conflict
			continue
		}
		for _, dest := range dests {
			claimed[dest.path] = f
		}
		p.stems[f] = stem
	}

	return sources, p
}

type destination struct {
	kind model.ArtifactKind
	path string
}

// destinations returns the artifact paths of path for every selected kind,
// in kind order. The diagram is reserved even when it may not be rendered.
func (d *Driver) destinations(path, stem string) []destination {
	dir := d.outputDir(path)
	out := make([]destination, 0, len(d.config.Kinds))
	for _, kind := range d.config.Kinds {
		out = append(out, destination{
			kind: kind,
			path: filepath.Clean(filepath.Join(dir, d.renderer.FileName(stem, kind))),
		})
	}
	return out
}

// outputDir mirrors the source directory of path under the output root.
func (d *Driver) outputDir(path string) string {
	relDir := filepath.Dir(filepath.FromSlash(d.relPath(path)))
	return filepath.Join(d.config.OutputRoot, relDir)
}

func defaultStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func hitsAny(dests []destination, set map[string]bool) bool {
	for _, dest := range dests {
		if set[dest.path] {
			return true
		}
	}
	return false
}

func readHead(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	buf := make([]byte, headSize)
	n, _ := io.ReadFull(f, buf)
	return buf[:n]
}
