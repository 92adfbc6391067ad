package model

import "strings"

// PrivatePrefix marks a declaration as private (Python convention).
const PrivatePrefix = "_"

// DeclarationKind tags the variant held by a Declaration.
type DeclarationKind string

const (
	KindFunction DeclarationKind = "function"
	KindClass    DeclarationKind = "class"
	KindMethod   DeclarationKind = "method"
)

// DetailLevel selects summary verbosity independent of artifact kind.
type DetailLevel string

const (
	DetailHigh DetailLevel = "high" // short, overview-style
	DetailLow  DetailLevel = "low"  // detailed, implementation-level
)

// ContentKind identifies what is being summarized. It selects the prompt template.
type ContentKind string

const (
	ContentFile     ContentKind = "file"
	ContentFunction ContentKind = "function"
	ContentClass    ContentKind = "class"
	ContentMethod   ContentKind = "method"
)

// ContentKindOf maps a declaration kind to the prompt content kind.
func ContentKindOf(kind DeclarationKind) ContentKind {
	switch kind {
	case KindClass:
		return ContentClass
	case KindMethod:
		return ContentMethod
	default:
		return ContentFunction
	}
}

// SourceUnit is the structural model of one analyzed file.
type SourceUnit struct {
	Path       string // Path as discovered (stable identifier)
	RelPath    string // Path relative to the source root, slash separated
	Language   string // "python", or empty for non-code assets
	Content    string // Raw file text
	DocComment string // Module doc comment, possibly empty

	// Functions is the flat view: every function-like node in the file,
	// methods included, in source order.
	Functions []*Declaration

	// Classes holds every class-like node in the file, nested ones flattened.
	Classes []*Declaration

	// Summaries holds file-level summaries keyed by detail level.
	// A missing key means no summary was attached.
	Summaries map[DetailLevel]string
}

// NewSourceUnit creates an empty unit for the given path.
func NewSourceUnit(path, relPath, content string) *SourceUnit {
	return &SourceUnit{
		Path:      path,
		RelPath:   relPath,
		Content:   content,
		Functions: []*Declaration{},
		Classes:   []*Declaration{},
		Summaries: map[DetailLevel]string{},
	}
}

// HasDeclarations reports whether the unit holds at least one function or class.
func (u *SourceUnit) HasDeclarations() bool {
	return len(u.Functions) > 0 || len(u.Classes) > 0
}

// TopLevelFunctions returns module-level functions in source order.
func (u *SourceUnit) TopLevelFunctions() []*Declaration {
	return filterTopLevel(u.Functions)
}

// TopLevelClasses returns module-level classes in source order.
func (u *SourceUnit) TopLevelClasses() []*Declaration {
	return filterTopLevel(u.Classes)
}

// Summary returns the file summary for a detail level.
func (u *SourceUnit) Summary(level DetailLevel) (string, bool) {
	s, ok := u.Summaries[level]
	return s, ok
}

// SetSummary attaches a file summary for a detail level.
func (u *SourceUnit) SetSummary(level DetailLevel, summary string) {
	if u.Summaries == nil {
		u.Summaries = map[DetailLevel]string{}
	}
	u.Summaries[level] = summary
}

// Declarations returns every declaration the enricher visits: flat functions,
// then each class followed by its methods.
func (u *SourceUnit) Declarations() []*Declaration {
	out := make([]*Declaration, 0, len(u.Functions)+len(u.Classes))
	out = append(out, u.Functions...)
	for _, cls := range u.Classes {
		out = append(out, cls)
		out = append(out, cls.Methods...)
	}
	return out
}

func filterTopLevel(decls []*Declaration) []*Declaration {
	out := []*Declaration{}
	for _, d := range decls {
		if d.Depth == 0 {
			out = append(out, d)
		}
	}
	return out
}

// Declaration is a function, class or method extracted from source.
// Kind-specific fields are left zero for other kinds.
type Declaration struct {
	Kind       DeclarationKind
	Name       string
	DocComment string
	Body       string // Self-contained source of the declaration
	Summary    string // Empty until enriched
	StartLine  int    // 1-indexed
	EndLine    int    // 1-indexed
	Depth      int    // Enclosing function/class count; 0 is module level
	Parent     string // Name of the enclosing declaration, if any

	// Function and method fields
	Params  []string
	Returns string // Simple return annotation, empty when absent or complex

	// Class fields
	Methods []*Declaration
}

// IsPublic reports whether the name lacks the private marker prefix.
func (d *Declaration) IsPublic() bool {
	return !strings.HasPrefix(d.Name, PrivatePrefix)
}

// HasSummary reports whether enrichment attached a summary.
func (d *Declaration) HasSummary() bool {
	return d.Summary != ""
}

// QualifiedName returns ClassName.methodName for methods and Name otherwise.
func (d *Declaration) QualifiedName() string {
	if d.Kind == KindMethod && d.Parent != "" {
		return d.Parent + "." + d.Name
	}
	return d.Name
}
