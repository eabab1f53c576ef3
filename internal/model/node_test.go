package model

import "testing"

func buildTree() (root, fn, branch, condition, call *Node) {
	condition = &Node{Type: NodeIdentifier, Name: "ready", Line: 2}
	call = &Node{Type: NodeCallExpression, Line: 3}
	branch = &Node{Type: NodeIfStatement, Line: 2, Children: []*Node{condition, call}}
	fn = &Node{Type: NodeFunctionDeclaration, Line: 1, Children: []*Node{branch}}
	root = &Node{Type: NodeProgram, Children: []*Node{fn}}

	return root, fn, branch, condition, call
}

func TestWalk_VisitsEveryNodeOnceInOrder(t *testing.T) {
	root, _, _, _, _ := buildTree()

	var entered, left []NodeType

	Walk(root, func(node, _ *Node) {
		entered = append(entered, node.Type)
	}, func(node *Node) {
		left = append(left, node.Type)
	})

	wantEntered := []NodeType{NodeProgram, NodeFunctionDeclaration, NodeIfStatement, NodeIdentifier, NodeCallExpression}
	wantLeft := []NodeType{NodeIdentifier, NodeCallExpression, NodeIfStatement, NodeFunctionDeclaration, NodeProgram}

	if len(entered) != len(wantEntered) {
		t.Fatalf("expected %d entered nodes, got %d", len(wantEntered), len(entered))
	}
	for i, typ := range wantEntered {
		if entered[i] != typ {
			t.Fatalf("entered[%d]: expected %s, got %s", i, typ, entered[i])
		}
	}

	if len(left) != len(wantLeft) {
		t.Fatalf("expected %d left nodes, got %d", len(wantLeft), len(left))
	}
	for i, typ := range wantLeft {
		if left[i] != typ {
			t.Fatalf("left[%d]: expected %s, got %s", i, typ, left[i])
		}
	}
}

func TestWalk_ReportsSyntacticParent(t *testing.T) {
	root, fn, branch, condition, call := buildTree()

	parents := map[*Node]*Node{}

	Walk(root, func(node, parent *Node) {
		parents[node] = parent
	}, nil)

	if parents[root] != nil {
		t.Fatalf("expected nil parent for root")
	}
	if parents[fn] != root {
		t.Fatalf("expected root as parent of function")
	}
	if parents[branch] != fn {
		t.Fatalf("expected function as parent of if statement")
	}
	if parents[condition] != branch || parents[call] != branch {
		t.Fatalf("expected if statement as parent of its operands")
	}
}

func TestWalk_PairsEnterAndLeave(t *testing.T) {
	root, _, _, _, _ := buildTree()

	depth := 0
	maxDepth := 0

	Walk(root, func(_, _ *Node) {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
	}, func(_ *Node) {
		depth--
	})

	if depth != 0 {
		t.Fatalf("expected every enter to be paired with a leave, got depth %d", depth)
	}
	if maxDepth != 4 {
		t.Fatalf("expected maximum nesting depth 4, got %d", maxDepth)
	}
}

func TestWalk_NilRootIsNoOp(t *testing.T) {
	visited := 0

	Walk(nil, func(_, _ *Node) { visited++ }, func(_ *Node) { visited++ })

	if visited != 0 {
		t.Fatalf("expected no visits for nil root, got %d", visited)
	}
}

func TestWalk_NilCallbacksAreAllowed(t *testing.T) {
	root, _, _, _, _ := buildTree()

	Walk(root, nil, nil)

	left := 0
	Walk(root, nil, func(_ *Node) { left++ })

	if left != 5 {
		t.Fatalf("expected 5 leave calls, got %d", left)
	}
}
