package render

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/project-docgen/internal/graph"
)

// mermaidReserved are words Mermaid's flowchart parser rejects as node IDs.
var mermaidReserved = map[string]bool{
	"end": true, "graph": true, "subgraph": true, "flowchart": true,
	"style": true, "class": true, "classDef": true, "click": true,
	"linkStyle": true, "direction": true,
}

// renderMermaid renders a Mermaid flowchart: node declarations in graph
// order, then edges. Functions are rounded, classes and methods bracketed.
func renderMermaid(g *graph.ContainmentGraph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := mermaidIDs(g)
	for _, n := range g.Nodes() {
		if n.Kind == graph.NodeFunction {
			fmt.Fprintf(&sb, "    %s(\"%s\")\n", ids[n.ID], n.Label)
		} else {
			fmt.Fprintf(&sb, "    %s[\"%s\"]\n", ids[n.ID], n.Label)
		}
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&sb, "    %s --> %s\n", ids[e.From], ids[e.To])
	}

	return sb.String()
}

// mermaidIDs maps graph IDs to Mermaid-safe identifiers, unique within the graph.
func mermaidIDs(g *graph.ContainmentGraph) map[string]string {
	ids := make(map[string]string, g.NodeCount())
	used := make(map[string]bool, g.NodeCount())

	for _, n := range g.Nodes() {
		base := sanitizeID(n.ID)
		if mermaidReserved[base] || (base[0] >= '0' && base[0] <= '9') {
			base = "n_" + base
		}
		id := base
		for i := 2; used[id]; i++ {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		used[id] = true
		ids[n.ID] = id
	}
	return ids
}

// sanitizeID replaces characters outside [A-Za-z0-9_] with underscores.
func sanitizeID(s string) string {
	var sb strings.Builder
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '_':
			sb.WriteRune(ch)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}

// renderDOT renders a Graphviz digraph with the same ordering rules.
func renderDOT(name string, g *graph.ContainmentGraph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", dotQuote(name))

	for _, n := range g.Nodes() {
		shape := "box"
		if n.Kind == graph.NodeFunction {
			shape = "oval"
		}
		fmt.Fprintf(&sb, "    %s [label=%s, shape=%s];\n", dotQuote(n.ID), dotQuote(n.Label), shape)
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&sb, "    %s -> %s;\n", dotQuote(e.From), dotQuote(e.To))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}
