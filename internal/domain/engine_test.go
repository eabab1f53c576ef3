package domain

import (
	"testing"

	m "github.com/mouse-blink/heft/internal/model"
)

// recorder is a Collector capturing scopes in creation order.
type recorder struct {
	scopes []*Scope
}

func (r *recorder) Add(scope *Scope) {
	r.scopes = append(r.scopes, scope)
}

func ident(name string) *m.Node {
	return &m.Node{Type: m.NodeIdentifier, Name: name}
}

func block(children ...*m.Node) *m.Node {
	return &m.Node{Type: m.NodeOther, Children: children}
}

func program(children ...*m.Node) *m.Node {
	return &m.Node{Type: m.NodeProgram, Children: children}
}

func call(line int, callee string, args ...*m.Node) *m.Node {
	children := append([]*m.Node{ident(callee)}, args...)

	return &m.Node{Type: m.NodeCallExpression, Line: line, Children: children}
}

// analyze runs a fresh engine with default weights over root.
func analyze(t *testing.T, root *m.Node) []*Scope {
	t.Helper()

	rec := &recorder{}
	NewEngine(m.DefaultWeights()).Analyze(root, rec)

	return rec.scopes
}

func TestEngine_EmptyProgram(t *testing.T) {
	scopes := analyze(t, program())

	if len(scopes) != 1 {
		t.Fatalf("expected only the whole-file scope, got %d scopes", len(scopes))
	}
	if got := scopes[0].Score(); got != 0 {
		t.Fatalf("expected score 0, got %d", got)
	}
	if got := scopes[0].Signature(); got != "*" {
		t.Fatalf("expected signature *, got %q", got)
	}
}

func TestEngine_NilTree(t *testing.T) {
	scopes := analyze(t, nil)

	if len(scopes) != 0 {
		t.Fatalf("expected no scopes for nil tree, got %d", len(scopes))
	}
}

func TestEngine_BranchWeights(t *testing.T) {
	tests := []struct {
		name string
		node *m.Node
		want int
	}{
		{
			name: "bare if",
			node: &m.Node{Type: m.NodeIfStatement, Line: 1, Children: []*m.Node{ident("a"), block()}},
			want: 10,
		},
		{
			name: "if with else",
			node: &m.Node{
				Type:      m.NodeIfStatement,
				Line:      1,
				Alternate: block(),
				Children:  []*m.Node{ident("a"), block(), block()},
			},
			want: 20,
		},
		{
			name: "populated switch case",
			node: &m.Node{Type: m.NodeSwitchCase, Line: 1, Consequent: []*m.Node{block()}, Children: []*m.Node{ident("a"), block()}},
			want: 10,
		},
		{
			name: "empty switch case",
			node: &m.Node{Type: m.NodeSwitchCase, Line: 1, Children: []*m.Node{ident("a")}},
			want: 1,
		},
		{
			name: "catch clause",
			node: &m.Node{Type: m.NodeCatchClause, Line: 1, Children: []*m.Node{block()}},
			want: 10,
		},
		{
			name: "ternary",
			node: &m.Node{Type: m.NodeConditionalExpression, Line: 1, Children: []*m.Node{ident("a"), ident("b"), ident("c")}},
			want: 10,
		},
		{
			name: "do while loop",
			node: &m.Node{Type: m.NodeDoWhileStatement, Line: 1, Children: []*m.Node{block(), ident("a")}},
			want: 10,
		},
		{
			name: "for loop",
			node: &m.Node{Type: m.NodeForStatement, Line: 1, Children: []*m.Node{block()}},
			want: 10,
		},
		{
			name: "for in loop",
			node: &m.Node{Type: m.NodeForInStatement, Line: 1, Children: []*m.Node{ident("k"), ident("o"), block()}},
			want: 10,
		},
		{
			name: "while loop",
			node: &m.Node{Type: m.NodeWhileStatement, Line: 1, Children: []*m.Node{ident("a"), block()}},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scopes := analyze(t, program(tt.node))

			if len(scopes) != 1 {
				t.Fatalf("expected 1 scope, got %d", len(scopes))
			}
			if got := scopes[0].Score(); got != tt.want {
				t.Fatalf("expected score %d, got %d", tt.want, got)
			}
		})
	}
}

func TestEngine_LogicalOperators(t *testing.T) {
	tests := []struct {
		operator string
		want     int
	}{
		{operator: "||", want: 10},
		{operator: "&&", want: 0},
		{operator: "??", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.operator, func(t *testing.T) {
			node := &m.Node{
				Type:     m.NodeLogicalExpression,
				Line:     1,
				Operator: tt.operator,
				Children: []*m.Node{ident("a"), ident("b")},
			}

			scopes := analyze(t, program(node))

			if got := scopes[0].Score(); got != tt.want {
				t.Fatalf("expected score %d for %s, got %d", tt.want, tt.operator, got)
			}
		})
	}
}

func TestEngine_CallExpressions(t *testing.T) {
	// f(g()) charges one call for f and one for g.
	scopes := analyze(t, program(call(1, "f", call(1, "g"))))

	if got := scopes[0].Score(); got != 2 {
		t.Fatalf("expected score 2, got %d", got)
	}
}

func TestEngine_UnscoredNodes(t *testing.T) {
	nodes := []*m.Node{
		ident("a"),
		{Type: m.NodeLiteral, Value: "42", Line: 1},
		{Type: m.NodeMemberExpression, Line: 1, Object: ident("a"), Property: ident("b")},
		{Type: m.NodeVariableDeclarator, Line: 1, ID: ident("x")},
		{Type: m.NodeAssignmentExpression, Line: 1, Left: ident("x")},
		block(),
	}

	scopes := analyze(t, program(nodes...))

	if got := scopes[0].Score(); got != 0 {
		t.Fatalf("expected score 0 for unscored nodes, got %d", got)
	}
}

func TestEngine_FunctionPenaltyChargedToEnclosingScope(t *testing.T) {
	// function foo() { if (a) { bar(); } else { baz(); } }
	alternate := block(call(2, "baz"))
	branch := &m.Node{
		Type:      m.NodeIfStatement,
		Line:      2,
		Alternate: alternate,
		Children:  []*m.Node{ident("a"), block(call(2, "bar")), alternate},
	}
	fn := &m.Node{
		Type:     m.NodeFunctionDeclaration,
		Line:     1,
		ID:       ident("foo"),
		Children: []*m.Node{ident("foo"), block(branch)},
	}

	scopes := analyze(t, program(fn))

	if len(scopes) != 2 {
		t.Fatalf("expected 2 scopes, got %d", len(scopes))
	}

	root, foo := scopes[0], scopes[1]

	if got := foo.Score(); got != 22 {
		t.Fatalf("expected foo score 22, got %d", got)
	}
	// The function's own penalty lands outside the scope it opens.
	if got := root.Score() - foo.Score(); got != 3 {
		t.Fatalf("expected function penalty 3 in the enclosing scope, got %d", got)
	}
	if got := root.Score(); got != 25 {
		t.Fatalf("expected whole-file score 25, got %d", got)
	}

	if foo.Signature() != "foo" {
		t.Fatalf("expected signature foo, got %q", foo.Signature())
	}
	if foo.Location() != 1 {
		t.Fatalf("expected location 1, got %d", foo.Location())
	}
}

func TestEngine_AlternateNodesAreWalked(t *testing.T) {
	// The else branch's own nodes are still walked and scored.
	alternate := block(call(2, "fallback"))
	branch := &m.Node{
		Type:      m.NodeIfStatement,
		Line:      1,
		Alternate: alternate,
		Children:  []*m.Node{ident("a"), block(), alternate},
	}

	scopes := analyze(t, program(branch))

	if got := scopes[0].Score(); got != 21 {
		t.Fatalf("expected score 21 (if/else plus one call), got %d", got)
	}
}

func TestEngine_NestedScopeDepthsAndOrder(t *testing.T) {
	inner := &m.Node{Type: m.NodeFunctionExpression, Line: 2}
	outer := &m.Node{
		Type:     m.NodeFunctionDeclaration,
		Line:     1,
		ID:       ident("outer"),
		Children: []*m.Node{ident("outer"), block(inner)},
	}

	scopes := analyze(t, program(outer))

	if len(scopes) != 3 {
		t.Fatalf("expected 3 scopes, got %d", len(scopes))
	}

	for i, wantDepth := range []int{0, 1, 2} {
		if got := scopes[i].Depth(); got != wantDepth {
			t.Fatalf("expected scope %d at depth %d, got %d", i, wantDepth, got)
		}
	}

	// Each function charges its penalty one level up.
	if got := scopes[0].Score(); got != 6 {
		t.Fatalf("expected whole-file score 6, got %d", got)
	}
	if got := scopes[1].Score(); got != 3 {
		t.Fatalf("expected outer score 3, got %d", got)
	}
	if got := scopes[2].Score(); got != 0 {
		t.Fatalf("expected inner score 0, got %d", got)
	}
}

func TestEngine_SiblingFunctionsShareParent(t *testing.T) {
	first := &m.Node{Type: m.NodeFunctionDeclaration, Line: 1, ID: ident("first"), Children: []*m.Node{ident("first"), block(call(1, "a"))}}
	second := &m.Node{Type: m.NodeFunctionDeclaration, Line: 4, ID: ident("second"), Children: []*m.Node{ident("second"), block(call(4, "b"))}}

	scopes := analyze(t, program(first, second))

	if len(scopes) != 3 {
		t.Fatalf("expected 3 scopes, got %d", len(scopes))
	}

	// Both siblings sit at depth 1; the call after the first function body
	// closed must not leak into it.
	if scopes[1].Depth() != 1 || scopes[2].Depth() != 1 {
		t.Fatalf("expected sibling functions at depth 1, got %d and %d", scopes[1].Depth(), scopes[2].Depth())
	}
	if got := scopes[1].Score(); got != 1 {
		t.Fatalf("expected first function score 1, got %d", got)
	}
	if got := scopes[2].Score(); got != 1 {
		t.Fatalf("expected second function score 1, got %d", got)
	}
	if got := scopes[0].Score(); got != 8 {
		t.Fatalf("expected whole-file score 8, got %d", got)
	}
}

func TestEngine_ReuseResetsState(t *testing.T) {
	engine := NewEngine(m.DefaultWeights())

	first := &recorder{}
	engine.Analyze(program(call(1, "f")), first)

	second := &recorder{}
	engine.Analyze(program(), second)

	if len(second.scopes) != 1 {
		t.Fatalf("expected a fresh whole-file scope, got %d scopes", len(second.scopes))
	}
	if got := second.scopes[0].Score(); got != 0 {
		t.Fatalf("expected score 0 on reuse, got %d", got)
	}
	if got := first.scopes[0].Score(); got != 1 {
		t.Fatalf("expected first run to keep score 1, got %d", got)
	}
}

func TestEngine_CustomWeights(t *testing.T) {
	weights := m.Weights{Branch: 100, EmptyBranch: 7, Function: 1, Call: 2}

	fn := &m.Node{Type: m.NodeFunctionDeclaration, Line: 1, ID: ident("f"), Children: []*m.Node{
		ident("f"),
		block(
			&m.Node{Type: m.NodeWhileStatement, Line: 2, Children: []*m.Node{ident("a"), block(call(3, "g"))}},
			&m.Node{Type: m.NodeSwitchCase, Line: 5},
		),
	}}

	rec := &recorder{}
	NewEngine(weights).Analyze(program(fn), rec)

	if got := rec.scopes[1].Score(); got != 109 {
		t.Fatalf("expected function score 109, got %d", got)
	}
	if got := rec.scopes[0].Score(); got != 110 {
		t.Fatalf("expected whole-file score 110, got %d", got)
	}
}
