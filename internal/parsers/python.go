package parsers

import (
	"context"
	"log"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/mvp-joe/project-docgen/internal/model"
)

// pythonParser extracts the structural model from Python files.
type pythonParser struct {
	*treeSitterParser
}

// NewPythonParser creates a new Python extractor.
func NewPythonParser() *pythonParser {
	lang := sitter.NewLanguage(python.Language())
	return &pythonParser{
		treeSitterParser: newTreeSitterParser(lang, "python"),
	}
}

// scope is one enclosing function or class during the walk.
type scope struct {
	kind string // "function_definition" or "class_definition"
	name string
}

// Extract parses Python source into a SourceUnit.
// Every function and class in the file is collected regardless of depth.
func (p *pythonParser) Extract(ctx context.Context, filePath string, source []byte) (*model.SourceUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := p.parse(filePath, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	rootNode := tree.RootNode()

	unit := model.NewSourceUnit(filePath, filePath, string(source))
	unit.Language = p.lang
	unit.DocComment = extractDocComment(rootNode, source)

	flattened := 0
	p.walk(rootNode, source, nil, unit, &flattened)

	if flattened > 0 {
		log.Printf("%s: flattened %d declaration(s) nested deeper than class.method\n", filePath, flattened)
	}

	return unit, nil
}

// walk visits the tree in source order, tracking enclosing declarations.
func (p *pythonParser) walk(node *sitter.Node, source []byte, stack []scope, unit *model.SourceUnit, flattened *int) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "function_definition":
		decl := p.extractFunction(node, source, model.KindFunction)
		if decl != nil {
			decl.Depth = len(stack)
			if len(stack) > 0 {
				enclosing := stack[len(stack)-1]
				decl.Parent = enclosing.name
				if enclosing.kind == "function_definition" {
					*flattened++
				}
			}
			unit.Functions = append(unit.Functions, decl)
			stack = append(stack, scope{kind: "function_definition", name: decl.Name})
		}
	case "class_definition":
		decl := p.extractClass(node, source)
		if decl != nil {
			decl.Depth = len(stack)
			if len(stack) > 0 {
				decl.Parent = stack[len(stack)-1].name
				*flattened++
			}
			unit.Classes = append(unit.Classes, decl)
			stack = append(stack, scope{kind: "class_definition", name: decl.Name})
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.walk(node.Child(uint(i)), source, stack, unit, flattened)
	}
}

// extractClass extracts a class definition and its direct methods.
func (p *pythonParser) extractClass(node *sitter.Node, source []byte) *model.Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	name := extractNodeText(nameNode, source)
	if name == "" {
		return nil
	}

	span := definitionSpan(node)
	startLine, endLine := lineRange(span)
	bodyNode := node.ChildByFieldName("body")

	cls := &model.Declaration{
		Kind:       model.KindClass,
		Name:       name,
		DocComment: extractDocComment(bodyNode, source),
		Body:       extractDedented(span, source),
		StartLine:  startLine,
		EndLine:    endLine,
		Methods:    []*model.Declaration{},
	}

	for _, child := range namedChildren(bodyNode) {
		fn := unwrapDecorated(child)
		if fn == nil || fn.Kind() != "function_definition" {
			continue
		}
		method := p.extractFunction(fn, source, model.KindMethod)
		if method == nil {
			continue
		}
		method.Depth = 1
		method.Parent = name
		cls.Methods = append(cls.Methods, method)
	}

	return cls
}

// extractFunction extracts a function definition as the given kind.
func (p *pythonParser) extractFunction(node *sitter.Node, source []byte, kind model.DeclarationKind) *model.Declaration {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	name := extractNodeText(nameNode, source)
	if name == "" {
		return nil
	}

	span := definitionSpan(node)
	startLine, endLine := lineRange(span)

	return &model.Declaration{
		Kind:       kind,
		Name:       name,
		DocComment: extractDocComment(node.ChildByFieldName("body"), source),
		Body:       extractDedented(span, source),
		StartLine:  startLine,
		EndLine:    endLine,
		Params:     extractParams(node.ChildByFieldName("parameters"), source),
		Returns:    extractReturnType(node.ChildByFieldName("return_type"), source),
	}
}

// definitionSpan returns the decorated_definition wrapping node, if any,
// so decorators are part of the reproduced body.
func definitionSpan(node *sitter.Node) *sitter.Node {
	parent := node.Parent()
	if parent != nil && parent.Kind() == "decorated_definition" {
		return parent
	}
	return node
}

// unwrapDecorated returns the definition inside a decorated_definition.
func unwrapDecorated(node *sitter.Node) *sitter.Node {
	if node.Kind() == "decorated_definition" {
		return node.ChildByFieldName("definition")
	}
	return node
}

// extractParams returns parameter names in order. Splat parameters keep their
// stars; bare separators are skipped.
func extractParams(paramsNode *sitter.Node, source []byte) []string {
	params := []string{}
	for _, child := range namedChildren(paramsNode) {
		if name := paramName(child, source); name != "" {
			params = append(params, name)
		}
	}
	return params
}

func paramName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Kind() {
	case "identifier":
		return extractNodeText(node, source)
	case "list_splat_pattern":
		return "*" + extractNodeText(findChildByType(node, "identifier"), source)
	case "dictionary_splat_pattern":
		return "**" + extractNodeText(findChildByType(node, "identifier"), source)
	case "default_parameter", "typed_default_parameter":
		return paramName(node.ChildByFieldName("name"), source)
	case "typed_parameter":
		children := namedChildren(node)
		if len(children) > 0 {
			return paramName(children[0], source)
		}
	}
	return ""
}

// extractReturnType returns a simple identifier annotation, or empty for
// anything more complex.
func extractReturnType(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "identifier" {
		return extractNodeText(node, source)
	}
	if node.Kind() == "type" {
		children := namedChildren(node)
		if len(children) == 1 && children[0].Kind() == "identifier" {
			return extractNodeText(children[0], source)
		}
	}
	return ""
}
