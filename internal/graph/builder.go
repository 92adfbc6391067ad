package graph

import (
	"errors"
	"fmt"
	"log"

	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// ContainmentGraph is the directed class→method membership graph of one unit.
// Nodes and edges keep insertion order so rendering is deterministic.
type ContainmentGraph struct {
	g     graph.Graph[string, *Node]
	nodes []*Node
	edges []Edge
	seen  map[string]int // label → occurrences, for collision IDs
}

// New creates an empty containment graph.
func New() *ContainmentGraph {
	return &ContainmentGraph{
		g:    graph.New(func(n *Node) string { return n.ID }, graph.Directed(), graph.PreventCycles()),
		seen: make(map[string]int),
	}
}

// Build derives the containment graph from a unit: one node per top-level
// function, one per class, and one per method (ClassName.methodName) with a
// class→method edge. Only the nested class view contributes methods.
func Build(unit *model.SourceUnit) *ContainmentGraph {
	cg := New()

	for _, fn := range unit.TopLevelFunctions() {
		cg.addNode(fn.Name, NodeFunction, fn.StartLine)
	}

	for _, cls := range unit.Classes {
		classNode := cg.addNode(cls.Name, NodeClass, cls.StartLine)
		for _, method := range cls.Methods {
			methodNode := cg.addNode(cls.Name+"."+method.Name, NodeMethod, method.StartLine)
			cg.addEdge(classNode.ID, methodNode.ID)
		}
	}

	return cg
}

// addNode inserts a node. A repeated label gets the ID "label~N" so colliding
// declarations stay distinct.
func (cg *ContainmentGraph) addNode(label string, kind NodeKind, line int) *Node {
	cg.seen[label]++
	id := label
	if n := cg.seen[label]; n > 1 {
		id = fmt.Sprintf("%s~%d", label, n)
	}

	node := &Node{ID: id, Label: label, Kind: kind, Line: line}
	for {
		err := cg.g.AddVertex(node, graph.VertexAttribute("kind", string(kind)))
		if err == nil {
			break
		}
		if !errors.Is(err, graph.ErrVertexAlreadyExists) {
			log.Printf("Warning: failed to add graph node %s: %v\n", id, err)
			return node
		}
		// A generated ID collided with a literal label; try the next suffix
		cg.seen[label]++
		node.ID = fmt.Sprintf("%s~%d", label, cg.seen[label])
	}

	cg.nodes = append(cg.nodes, node)
	return node
}

func (cg *ContainmentGraph) addEdge(from, to string) {
	if err := cg.g.AddEdge(from, to, graph.EdgeAttribute("type", string(EdgeContains))); err != nil {
		log.Printf("Warning: failed to add graph edge %s -> %s: %v\n", from, to, err)
		return
	}
	cg.edges = append(cg.edges, Edge{From: from, To: to, Type: EdgeContains})
}

// Nodes returns nodes in insertion order.
func (cg *ContainmentGraph) Nodes() []*Node {
	return cg.nodes
}

// Edges returns edges in insertion order.
func (cg *ContainmentGraph) Edges() []Edge {
	return cg.edges
}

// NodeCount returns the number of nodes.
func (cg *ContainmentGraph) NodeCount() int {
	return len(cg.nodes)
}

// EdgeCount returns the number of edges.
func (cg *ContainmentGraph) EdgeCount() int {
	return len(cg.edges)
}

// Node returns the node with the given ID.
func (cg *ContainmentGraph) Node(id string) (*Node, bool) {
	n, err := cg.g.Vertex(id)
	if err != nil {
		return nil, false
	}
	return n, true
}

// Successors returns the IDs of nodes contained by id, in insertion order.
func (cg *ContainmentGraph) Successors(id string) []string {
	adjacency, err := cg.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	targets := adjacency[id]

	out := []string{}
	for _, e := range cg.edges {
		if e.From != id {
			continue
		}
		if _, ok := targets[e.To]; ok {
			out = append(out, e.To)
		}
	}
	return out
}

// IsEmpty reports whether the graph has no nodes.
func (cg *ContainmentGraph) IsEmpty() bool {
	return len(cg.nodes) == 0
}
