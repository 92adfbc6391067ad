package graph

// NodeKind represents the type of a declaration in the containment graph.
type NodeKind string

const (
	NodeFunction NodeKind = "function"
	NodeClass    NodeKind = "class"
	NodeMethod   NodeKind = "method"
)

// Node represents a declaration in the containment graph.
type Node struct {
	ID    string   `json:"id"`    // Graph-unique identifier (e.g., "Repo", "Repo.save", "f~2")
	Label string   `json:"label"` // Display name; equals ID unless a collision was disambiguated
	Kind  NodeKind `json:"kind"`  // Type of node
	Line  int      `json:"line"`  // Start line of the declaration (1-indexed)
}

// EdgeType represents the type of relationship between nodes.
type EdgeType string

const (
	EdgeContains EdgeType = "contains" // Class contains method
)

// Edge represents a relationship between two declarations.
type Edge struct {
	From string   `json:"from"` // Source node ID
	To   string   `json:"to"`   // Target node ID
	Type EdgeType `json:"type"` // Relationship type
}
