package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// treeSitterParser holds the grammar shared by tree-sitter based extractors.
type treeSitterParser struct {
	language *sitter.Language
	lang     string
}

// newTreeSitterParser creates a new tree-sitter parser for the given language.
func newTreeSitterParser(language *sitter.Language, lang string) *treeSitterParser {
	return &treeSitterParser{
		language: language,
		lang:     lang,
	}
}

// parse parses source and returns the tree. Callers must Close the tree.
// A tree containing error nodes is reported as a *ParseError.
func (p *treeSitterParser) parse(filePath string, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, &ParseError{Path: filePath, Msg: "load " + p.lang + " grammar: " + err.Error()}
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Path: filePath, Msg: "failed to parse " + p.lang + " file"}
	}

	root := tree.RootNode()
	if root.HasError() {
		bad := firstErrorNode(root)
		tree.Close()
		perr := &ParseError{Path: filePath, Msg: "invalid " + p.lang + " syntax"}
		if bad != nil {
			pos := bad.StartPosition()
			perr.Line = int(pos.Row) + 1
			perr.Column = int(pos.Column) + 1
			if bad.IsMissing() {
				perr.Msg = "missing " + bad.Kind()
			}
		}
		return nil, perr
	}

	return tree, nil
}

// firstErrorNode returns the first ERROR or MISSING node in document order.
func firstErrorNode(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return false
		}
		return n.HasError()
	})
	return found
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// extractDedented returns the node's text with the indentation of its first
// line removed from every following line, so nested definitions stand alone.
func extractDedented(node *sitter.Node, source []byte) string {
	text := strings.TrimRight(extractNodeText(node, source), " \t\r\n")
	indent := int(node.StartPosition().Column)
	if indent == 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = trimIndent(lines[i], indent)
	}
	return strings.Join(lines, "\n")
}

// trimIndent strips up to n leading spaces or tabs.
func trimIndent(line string, n int) string {
	i := 0
	for i < n && i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[i:]
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
// Returning false from the visitor skips the node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		walkTree(child, visitor)
	}
}

// namedChildren returns the named children of node, skipping comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child == nil || child.Kind() == "comment" {
			continue
		}
		results = append(results, child)
	}
	return results
}

// findChildByType finds the first named child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	for _, child := range namedChildren(node) {
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// lineRange returns the 1-indexed start and end lines of a node. A node that
// ends at column 0 ends on the previous line.
func lineRange(node *sitter.Node) (int, int) {
	start, end := node.StartPosition(), node.EndPosition()
	endLine := int(end.Row) + 1
	if end.Column == 0 && end.Row > start.Row {
		endLine--
	}
	return int(start.Row) + 1, endLine
}
