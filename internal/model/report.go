package model

// ScopeScore is one reported scope: its derived signature, the line it
// starts on (0 for the whole-file scope) and its rolled-up score.
type ScopeScore struct {
	Signature string `yaml:"signature" json:"signature"`
	Line      int    `yaml:"line" json:"location"`
	Score     int    `yaml:"score" json:"score"`
}

// FileScore holds the complexity results for a single source file.
type FileScore struct {
	File Path   `yaml:"file"`
	Hash string `yaml:"hash"`
	// Scopes lists every reported scope in creation order, the whole-file
	// scope first.
	Scopes []ScopeScore `yaml:"scopes"`
}

// Total returns the score of the whole-file scope, or 0 when the file
// produced no scopes.
func (f FileScore) Total() int {
	if len(f.Scopes) == 0 {
		return 0
	}

	return f.Scopes[0].Score
}

// ScopeCount returns the number of function scopes in the file, excluding
// the whole-file scope.
func (f FileScore) ScopeCount() int {
	if len(f.Scopes) == 0 {
		return 0
	}

	return len(f.Scopes) - 1
}
