package domain

import (
	"encoding/json"

	m "github.com/mouse-blink/heft/internal/model"
)

// Scope is one lexical scope discovered during an analysis: the whole file,
// or a function definition nested somewhere inside it. Penalties accumulate
// on the innermost enclosing scope and roll up through parents on demand.
type Scope struct {
	node       *m.Node
	parentNode *m.Node
	children   []*Scope
	localScore int
	depth      int
}

// NewScope creates a record for the scope opened by node. parentNode is the
// node's immediate syntactic parent, used to derive signatures for anonymous
// functions. parent is the lexically enclosing scope, nil for the whole-file
// scope; the new record registers itself as a child of parent so scores roll
// up.
func NewScope(node, parentNode *m.Node, parent *Scope) *Scope {
	s := &Scope{node: node, parentNode: parentNode}

	if parent != nil {
		s.depth = parent.depth + 1
		parent.children = append(parent.children, s)
	}

	return s
}

// add charges points to this scope alone.
func (s *Scope) add(points int) {
	s.localScore += points
}

// Score returns the total complexity of this scope, including every scope
// nested inside it.
func (s *Scope) Score() int {
	total := s.localScore

	for _, child := range s.children {
		total += child.Score()
	}

	return total
}

// Depth returns how many scopes enclose this one. The whole-file scope is at
// depth 0.
func (s *Scope) Depth() int {
	return s.depth
}

// Location returns the 1-based line the scope starts on, or 0 for the
// whole-file scope.
func (s *Scope) Location() int {
	if s.node == nil || s.node.Type == m.NodeProgram {
		return 0
	}

	return s.node.Line
}

// Signature derives a display name for the scope. Resolution tries a fixed
// chain: "*" for the whole-file scope, then the function's own declared
// name, then the name of the variable declarator it initializes, then the
// dotted path of the assignment target it is assigned to, and finally
// "anonymous".
func (s *Scope) Signature() string {
	resolvers := []func() (string, bool){
		s.wholeFileSignature,
		s.declaredNameSignature,
		s.declaratorSignature,
		s.assignmentSignature,
	}

	for _, resolve := range resolvers {
		if signature, ok := resolve(); ok {
			return signature
		}
	}

	return "anonymous"
}

// MarshalJSON serializes the scope as its report row.
func (s *Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.row())
}

// row converts the scope into its report row with the score rolled up.
func (s *Scope) row() m.ScopeScore {
	return m.ScopeScore{
		Signature: s.Signature(),
		Line:      s.Location(),
		Score:     s.Score(),
	}
}

func (s *Scope) wholeFileSignature() (string, bool) {
	if s.node == nil || s.node.Type == m.NodeProgram {
		return "*", true
	}

	return "", false
}

func (s *Scope) declaredNameSignature() (string, bool) {
	if s.node.ID == nil || s.node.ID.Name == "" {
		return "", false
	}

	return s.node.ID.Name, true
}

func (s *Scope) declaratorSignature() (string, bool) {
	if s.parentNode == nil || s.parentNode.Type != m.NodeVariableDeclarator {
		return "", false
	}

	if s.parentNode.ID == nil || s.parentNode.ID.Name == "" {
		return "", false
	}

	return s.parentNode.ID.Name, true
}

func (s *Scope) assignmentSignature() (string, bool) {
	if s.parentNode == nil || s.parentNode.Type != m.NodeAssignmentExpression {
		return "", false
	}

	return memberPath(s.parentNode.Left), true
}

// memberPath renders an assignment target as a dotted path, descending
// member expressions from left to right. Segments that are neither
// identifiers nor literals render as "?" so a partial path still reads
// usefully.
func memberPath(node *m.Node) string {
	if node == nil {
		return "?"
	}

	switch node.Type {
	case m.NodeIdentifier:
		return node.Name
	case m.NodeLiteral:
		return node.Value
	case m.NodeMemberExpression:
		return memberPath(node.Object) + "." + memberPath(node.Property)
	default:
		return "?"
	}
}
