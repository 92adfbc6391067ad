// Package render turns a structural model and its containment graph into
// documentation artifacts. Rendering is pure: the same unit, graph and
// options always produce byte-identical text.
package render

import (
	"path/filepath"
	"strings"

	"github.com/mvp-joe/project-docgen/internal/graph"
	"github.com/mvp-joe/project-docgen/internal/model"
)

// DiagramFormat selects the declarative graph language.
type DiagramFormat string

const (
	DiagramMermaid DiagramFormat = "mermaid"
	DiagramDOT     DiagramFormat = "dot"
)

// UnknownReturn is printed when a function has no simple return annotation.
const UnknownReturn = "unknown"

// Options configures rendering.
type Options struct {
	DiagramFormat DiagramFormat
}

// Renderer renders artifacts for one unit at a time.
type Renderer struct {
	opts Options
}

// New creates a renderer. An empty diagram format selects Mermaid.
func New(opts Options) *Renderer {
	if opts.DiagramFormat == "" {
		opts.DiagramFormat = DiagramMermaid
	}
	return &Renderer{opts: opts}
}

// Render produces the text of each requested kind. The diagram is omitted
// when the unit has no functions or classes.
func (r *Renderer) Render(unit *model.SourceUnit, g *graph.ContainmentGraph, kinds model.KindSet) map[model.ArtifactKind]string {
	out := make(map[model.ArtifactKind]string, len(kinds))
	for _, kind := range kinds {
		switch kind {
		case model.ArtifactExternal:
			out[kind] = r.External(unit)
		case model.ArtifactInternal:
			out[kind] = r.Internal(unit)
		case model.ArtifactDiagram:
			if unit.HasDeclarations() {
				out[kind] = r.Diagram(unit, g)
			}
		}
	}
	return out
}

// Diagram renders the containment graph in the configured format.
func (r *Renderer) Diagram(unit *model.SourceUnit, g *graph.ContainmentGraph) string {
	if r.opts.DiagramFormat == DiagramDOT {
		return renderDOT(filepath.Base(unit.Path), g)
	}
	return renderMermaid(g)
}

// DiagramExt returns the file extension used for diagrams.
func (r *Renderer) DiagramExt() string {
	if r.opts.DiagramFormat == DiagramDOT {
		return ".dot"
	}
	return ".mmd"
}

// FileName returns the artifact file name for a source base name without
// extension: name.md, name_internal.md, name_diagram.mmd.
func (r *Renderer) FileName(baseName string, kind model.ArtifactKind) string {
	switch kind {
	case model.ArtifactInternal:
		return baseName + "_internal.md"
	case model.ArtifactDiagram:
		return baseName + "_diagram" + r.DiagramExt()
	default:
		return baseName + ".md"
	}
}

// codeFence returns a backtick fence longer than any run inside body.
func codeFence(body string) string {
	longest, run := 0, 0
	for _, ch := range body {
		if ch == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// IsGenerated reports whether head is the start of a kind artifact this
// renderer would produce for a source file named sourceName.
func (r *Renderer) IsGenerated(kind model.ArtifactKind, sourceName string, head []byte) bool {
	var prefix string
	switch kind {
	case model.ArtifactExternal:
		prefix = "# " + sourceName + "\n\n"
	case model.ArtifactInternal:
		prefix = "# Internal Documentation: " + sourceName + "\n\n"
	case model.ArtifactDiagram:
		if r.opts.DiagramFormat == DiagramDOT {
			prefix = "digraph " + dotQuote(sourceName) + " {\n"
		} else {
			prefix = "graph TD\n"
		}
	default:
		return false
	}
	return strings.HasPrefix(string(head), prefix)
}
