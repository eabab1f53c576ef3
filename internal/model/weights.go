package model

// Weights maps each scored construct category to its penalty. A Weights
// value is fixed for the duration of an analysis run.
type Weights struct {
	// Branch is charged for every construct that forks control flow:
	// conditionals, loops, catch clauses, populated switch cases and
	// logical-OR short circuits.
	Branch int
	// EmptyBranch is charged for a switch case with no statements of its
	// own instead of the full Branch penalty.
	EmptyBranch int
	// Function is charged for every function definition, on top of the
	// scope it opens.
	Function int
	// Call is charged for every call expression.
	Call int
}

// DefaultWeights returns the standard penalty set. Branching dominates by an
// order of magnitude so that scores track control-flow shape rather than raw
// code size; functions and calls are minor structural penalties for
// indirection and fan-out.
func DefaultWeights() Weights {
	return Weights{
		Branch:      10,
		EmptyBranch: 1,
		Function:    3,
		Call:        1,
	}
}
