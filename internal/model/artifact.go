package model

// ArtifactKind names a rendered output.
type ArtifactKind string

const (
	ArtifactExternal ArtifactKind = "external"
	ArtifactInternal ArtifactKind = "internal"
	ArtifactDiagram  ArtifactKind = "diagram"
)

// AllArtifactKinds lists kinds in the order they are rendered and written.
var AllArtifactKinds = []ArtifactKind{ArtifactExternal, ArtifactInternal, ArtifactDiagram}

// Artifact is one rendered output bound to a source unit.
type Artifact struct {
	Kind    ArtifactKind
	Path    string // Destination path
	Content string
}

// KindSet is an ordered selection of artifact kinds.
type KindSet []ArtifactKind

// Has reports whether kind is selected.
func (s KindSet) Has(kind ArtifactKind) bool {
	for _, k := range s {
		if k == kind {
			return true
		}
	}
	return false
}

// SelectKinds resolves the --internal/--external flags. Neither or both
// selects everything. The diagram travels with the internal doc.
func SelectKinds(internal, external bool) KindSet {
	if internal == external {
		return KindSet{ArtifactExternal, ArtifactInternal, ArtifactDiagram}
	}
	if internal {
		return KindSet{ArtifactInternal, ArtifactDiagram}
	}
	return KindSet{ArtifactExternal}
}
