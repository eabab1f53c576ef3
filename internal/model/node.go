// Package model defines the data structures for complexity analysis.
package model

// NodeType identifies the syntactic category of a Node. The set is closed:
// the parser adapter lowers every construct it meets into one of these
// types, folding anything without scoring or naming relevance into
// NodeOther.
type NodeType string

const (
	// NodeProgram is the root of a parsed file and the outermost scope.
	NodeProgram NodeType = "program"
	// NodeFunctionDeclaration is a named function statement.
	NodeFunctionDeclaration NodeType = "function-declaration"
	// NodeFunctionExpression is a function used as a value: function
	// expressions, arrow functions, generator expressions and method
	// definitions all lower to this type.
	NodeFunctionExpression NodeType = "function-expression"
	// NodeCallExpression is a function invocation.
	NodeCallExpression NodeType = "call-expression"
	// NodeIfStatement is a conditional statement; Alternate holds the
	// else branch when present.
	NodeIfStatement NodeType = "if-statement"
	// NodeSwitchCase is a single case (or default) label inside a switch;
	// Consequent holds its statements.
	NodeSwitchCase NodeType = "switch-case"
	// NodeLogicalExpression is a short-circuit operator expression
	// (||, && or ??); Operator holds the symbol.
	NodeLogicalExpression NodeType = "logical-expression"
	// NodeCatchClause is the catch arm of a try statement.
	NodeCatchClause NodeType = "catch-clause"
	// NodeConditionalExpression is a ternary (?:) expression.
	NodeConditionalExpression NodeType = "conditional-expression"
	// NodeDoWhileStatement is a do/while loop.
	NodeDoWhileStatement NodeType = "do-while-statement"
	// NodeForStatement is a classic three-clause for loop.
	NodeForStatement NodeType = "for-statement"
	// NodeForInStatement is a for-in or for-of loop.
	NodeForInStatement NodeType = "for-in-statement"
	// NodeWhileStatement is a while loop.
	NodeWhileStatement NodeType = "while-statement"
	// NodeVariableDeclarator binds one name inside a var/let/const
	// declaration; ID holds the bound identifier.
	NodeVariableDeclarator NodeType = "variable-declarator"
	// NodeAssignmentExpression assigns to a target; Left holds the target.
	NodeAssignmentExpression NodeType = "assignment-expression"
	// NodeMemberExpression is a property access such as a.b or a["b"];
	// Object and Property hold the operands.
	NodeMemberExpression NodeType = "member-expression"
	// NodeIdentifier is a bare name; Name holds its text.
	NodeIdentifier NodeType = "identifier"
	// NodeLiteral is a primitive literal; Value holds its text.
	NodeLiteral NodeType = "literal"
	// NodeOther covers every construct with no scoring or naming
	// relevance. Its children still participate in the walk.
	NodeOther NodeType = "other"
)

// Node is one vertex of a lowered syntax tree. Children always lists every
// child in source order and is the only field the tree walk reads; the typed
// fields alias entries of Children (or nested nodes) so scoring and signature
// rules can reach the operands they care about without re-deriving structure.
type Node struct {
	Type NodeType
	// Line is the 1-based source line the construct starts on.
	Line int

	// Name is the identifier text when Type is NodeIdentifier.
	Name string
	// Operator is the operator symbol when Type is NodeLogicalExpression.
	Operator string
	// Value is the raw text when Type is NodeLiteral.
	Value string

	// ID is the declared name: the identifier of a named function or the
	// bound identifier of a variable declarator. Nil when anonymous.
	ID *Node
	// Left is the assignment target of an assignment expression.
	Left *Node
	// Object and Property are the operands of a member expression.
	Object   *Node
	Property *Node
	// Alternate is the else branch of an if statement, nil when absent.
	Alternate *Node
	// Consequent lists the statements of a switch case. Empty for a
	// fall-through label with no body of its own.
	Consequent []*Node

	Children []*Node
}

// Walk traverses the tree rooted at node in a single pass, calling enter in
// pre-order with each node and its immediate syntactic parent, and leave in
// post-order. Every node is visited exactly once; a nil root is a no-op.
// Either callback may be nil.
func Walk(node *Node, enter func(node, parent *Node), leave func(node *Node)) {
	walk(node, nil, enter, leave)
}

func walk(node, parent *Node, enter func(node, parent *Node), leave func(node *Node)) {
	if node == nil {
		return
	}

	if enter != nil {
		enter(node, parent)
	}

	for _, child := range node.Children {
		walk(child, node, enter, leave)
	}

	if leave != nil {
		leave(node)
	}
}
