package domain

import (
	m "github.com/mouse-blink/heft/internal/model"
)

// Collector receives every scope record an analysis creates, in creation
// order. The whole-file scope always arrives first.
type Collector interface {
	Add(scope *Scope)
}

// Engine scores one lowered syntax tree at a time. Each construct's penalty
// is charged to the innermost enclosing scope at the moment the construct is
// entered; function definitions then push a fresh scope for their own body.
type Engine struct {
	weights m.Weights
	stack   []*Scope
}

// NewEngine creates an engine charging the provided weights. An engine keeps
// per-run state, so concurrent analyses need one engine each.
func NewEngine(weights m.Weights) *Engine {
	return &Engine{weights: weights}
}

// Analyze walks the tree rooted at root in a single pass, charging each
// node's penalty and notifying collector of every scope as it is created.
// A nil root produces no scopes. A nil collector only accumulates.
func (e *Engine) Analyze(root *m.Node, collector Collector) {
	e.stack = e.stack[:0]

	m.Walk(root, func(node, parent *m.Node) {
		e.score(node)

		if opensScope(node) {
			e.push(node, parent, collector)
		}
	}, func(node *m.Node) {
		if opensScope(node) {
			e.pop()
		}
	})
}

// score charges the node's penalty to the scope on top of the stack. The
// program root is entered before any scope exists and charges nothing.
func (e *Engine) score(node *m.Node) {
	if len(e.stack) == 0 {
		return
	}

	e.stack[len(e.stack)-1].add(e.points(node))
}

// points maps a node to its penalty under the engine's weights. A function
// charges its penalty to the scope that contains it, not to the scope it
// opens.
func (e *Engine) points(node *m.Node) int {
	switch node.Type {
	case m.NodeFunctionDeclaration, m.NodeFunctionExpression:
		return e.weights.Function
	case m.NodeCallExpression:
		return e.weights.Call
	case m.NodeIfStatement:
		if node.Alternate != nil {
			return 2 * e.weights.Branch
		}

		return e.weights.Branch
	case m.NodeSwitchCase:
		if len(node.Consequent) == 0 {
			return e.weights.EmptyBranch
		}

		return e.weights.Branch
	case m.NodeLogicalExpression:
		if node.Operator == "||" {
			return e.weights.Branch
		}

		return 0
	case m.NodeCatchClause, m.NodeConditionalExpression, m.NodeDoWhileStatement,
		m.NodeForStatement, m.NodeForInStatement, m.NodeWhileStatement:
		return e.weights.Branch
	default:
		return 0
	}
}

// opensScope reports whether node defines a new lexical scope. The walk
// enters and leaves each node exactly once, so the predicate that pushes at
// enter also pops at leave.
func opensScope(node *m.Node) bool {
	switch node.Type {
	case m.NodeProgram, m.NodeFunctionDeclaration, m.NodeFunctionExpression:
		return true
	default:
		return false
	}
}

func (e *Engine) push(node, parent *m.Node, collector Collector) {
	var enclosing *Scope
	if len(e.stack) > 0 {
		enclosing = e.stack[len(e.stack)-1]
	}

	scope := NewScope(node, parent, enclosing)

	if collector != nil {
		collector.Add(scope)
	}

	e.stack = append(e.stack, scope)
}

func (e *Engine) pop() {
	e.stack = e.stack[:len(e.stack)-1]
}
