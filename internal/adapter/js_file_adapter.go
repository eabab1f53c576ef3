package adapter

import (
	"errors"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	m "github.com/mouse-blink/heft/internal/model"
)

// ErrSyntax reports that content did not parse as JavaScript.
var ErrSyntax = errors.New("syntax error")

// JSFileAdapter encapsulates JavaScript-specific parsing so the domain layer
// can focus on scoring rules while delegating grammar details to an
// infrastructure component.
type JSFileAdapter interface {
	// Parse lowers source content into a model tree plus the comments found
	// along the way.
	Parse(content []byte) (*m.Node, []m.Comment, error)
}

// LocalJSFileAdapter provides a concrete JSFileAdapter backed by the
// tree-sitter JavaScript grammar.
type LocalJSFileAdapter struct {
	language *tree_sitter.Language
}

// NewLocalJSFileAdapter constructs a LocalJSFileAdapter. The grammar is
// loaded once and shared; parsers are created per call because they carry
// parse state.
func NewLocalJSFileAdapter() *LocalJSFileAdapter {
	return &LocalJSFileAdapter{
		language: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
	}
}

// Parse parses content and lowers the concrete syntax tree into the model
// vocabulary. Invalid JavaScript returns ErrSyntax so callers can skip the
// file instead of failing a whole run.
func (a *LocalJSFileAdapter) Parse(content []byte) (*m.Node, []m.Comment, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(a.language); err != nil {
		return nil, nil, fmt.Errorf("set language: %w", err)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, nil, ErrSyntax
	}

	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, nil, ErrSyntax
	}

	l := &lowering{content: content}
	node := l.lower(root)

	return node, l.comments, nil
}

// lowering carries per-parse state while converting the concrete syntax tree
// into the model vocabulary.
type lowering struct {
	content  []byte
	comments []m.Comment
}

func (l *lowering) lower(tsNode *tree_sitter.Node) *m.Node {
	kind := tsNode.Kind()

	node := &m.Node{
		Type: mapKind(kind),
		Line: int(tsNode.StartPosition().Row) + 1,
	}

	if kind == "binary_expression" {
		node.Type, node.Operator = lowerBinary(tsNode, l.content)
	}

	switch node.Type {
	case m.NodeIdentifier:
		node.Name = tsNode.Utf8Text(l.content)
	case m.NodeLiteral:
		node.Value = literalText(tsNode, l.content)
	}

	l.lowerChildren(tsNode, node, kind)

	return node
}

// lowerChildren lowers every named child into Children, diverting comments
// into the comment list and binding field targets to the typed slots the
// scoring and signature rules read.
func (l *lowering) lowerChildren(tsNode *tree_sitter.Node, node *m.Node, kind string) {
	links := linksFor(tsNode, kind)

	for i := uint(0); i < tsNode.ChildCount(); i++ {
		child := tsNode.Child(i)

		if !child.IsNamed() {
			continue
		}

		if child.Kind() == "comment" {
			l.collectComment(child)
			continue
		}

		lowered := l.lower(child)
		node.Children = append(node.Children, lowered)
		links.bind(child, lowered, node)
	}
}

func (l *lowering) collectComment(tsNode *tree_sitter.Node) {
	l.comments = append(l.comments, m.Comment{
		Line:    int(tsNode.StartPosition().Row) + 1,
		Leading: onlyWhitespaceBefore(l.content, tsNode.StartByte()),
		Text:    tsNode.Utf8Text(l.content),
	})
}

// lowerBinary classifies a binary expression. Short-circuit operators become
// logical expressions carrying their operator symbol; arithmetic and
// comparison operators stay unscored.
func lowerBinary(tsNode *tree_sitter.Node, content []byte) (m.NodeType, string) {
	operator := tsNode.ChildByFieldName("operator")
	if operator == nil {
		return m.NodeOther, ""
	}

	switch op := operator.Utf8Text(content); op {
	case "||", "&&", "??":
		return m.NodeLogicalExpression, op
	default:
		return m.NodeOther, ""
	}
}

// literalText extracts the value text of a literal. String literals yield
// their fragment without the quotes so member paths read naturally.
func literalText(tsNode *tree_sitter.Node, content []byte) string {
	if tsNode.Kind() != "string" {
		return tsNode.Utf8Text(content)
	}

	for i := uint(0); i < tsNode.ChildCount(); i++ {
		child := tsNode.Child(i)
		if child.Kind() == "string_fragment" {
			return child.Utf8Text(content)
		}
	}

	return ""
}

// onlyWhitespaceBefore reports whether nothing but spaces and tabs precede
// offset on its line, which makes a comment at offset a leading comment.
func onlyWhitespaceBefore(content []byte, offset uint) bool {
	for i := int(offset) - 1; i >= 0; i-- {
		switch content[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}

	return true
}

// mapKind translates grammar node kinds into the model vocabulary. Anything
// without scoring or naming relevance folds into NodeOther; its children are
// still lowered and walked.
func mapKind(kind string) m.NodeType {
	switch kind {
	case "program":
		return m.NodeProgram
	case "function_declaration", "generator_function_declaration":
		return m.NodeFunctionDeclaration
	case "function_expression", "generator_function", "arrow_function", "method_definition":
		return m.NodeFunctionExpression
	case "call_expression":
		return m.NodeCallExpression
	case "if_statement":
		return m.NodeIfStatement
	case "switch_case", "switch_default":
		return m.NodeSwitchCase
	case "catch_clause":
		return m.NodeCatchClause
	case "ternary_expression":
		return m.NodeConditionalExpression
	case "do_statement":
		return m.NodeDoWhileStatement
	case "for_statement":
		return m.NodeForStatement
	case "for_in_statement":
		return m.NodeForInStatement
	case "while_statement":
		return m.NodeWhileStatement
	case "variable_declarator":
		return m.NodeVariableDeclarator
	case "assignment_expression", "augmented_assignment_expression":
		return m.NodeAssignmentExpression
	case "member_expression", "subscript_expression":
		return m.NodeMemberExpression
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier":
		return m.NodeIdentifier
	case "string", "number", "true", "false", "null", "undefined", "regex":
		return m.NodeLiteral
	default:
		return m.NodeOther
	}
}

// fieldLinks holds the field targets of one syntax node so its lowered
// children can be bound to the typed slots of the model node.
type fieldLinks struct {
	id         *tree_sitter.Node
	left       *tree_sitter.Node
	object     *tree_sitter.Node
	property   *tree_sitter.Node
	alternate  *tree_sitter.Node
	value      *tree_sitter.Node
	consequent bool
}

func linksFor(tsNode *tree_sitter.Node, kind string) fieldLinks {
	var links fieldLinks

	switch kind {
	case "function_declaration", "generator_function_declaration",
		"function_expression", "generator_function", "method_definition",
		"variable_declarator":
		links.id = tsNode.ChildByFieldName("name")
	case "assignment_expression", "augmented_assignment_expression":
		links.left = tsNode.ChildByFieldName("left")
	case "member_expression":
		links.object = tsNode.ChildByFieldName("object")
		links.property = tsNode.ChildByFieldName("property")
	case "subscript_expression":
		links.object = tsNode.ChildByFieldName("object")
		links.property = tsNode.ChildByFieldName("index")
	case "if_statement":
		links.alternate = tsNode.ChildByFieldName("alternative")
	case "switch_case":
		links.value = tsNode.ChildByFieldName("value")
		links.consequent = true
	case "switch_default":
		links.consequent = true
	}

	return links
}

// bind attaches a lowered child to the typed slot its field position calls
// for. Statements of a switch case that are not the discriminant collect
// into Consequent.
func (fl fieldLinks) bind(child *tree_sitter.Node, lowered, parent *m.Node) {
	switch {
	case fl.id != nil && child.Id() == fl.id.Id():
		parent.ID = lowered
	case fl.left != nil && child.Id() == fl.left.Id():
		parent.Left = lowered
	case fl.object != nil && child.Id() == fl.object.Id():
		parent.Object = lowered
	case fl.property != nil && child.Id() == fl.property.Id():
		parent.Property = lowered
	case fl.alternate != nil && child.Id() == fl.alternate.Id():
		parent.Alternate = lowered
	case fl.consequent:
		if fl.value != nil && child.Id() == fl.value.Id() {
			return
		}

		parent.Consequent = append(parent.Consequent, lowered)
	}
}
