package domain

import (
	m "github.com/mouse-blink/heft/internal/model"
)

// ScoreFile collects the scopes of a single source file as an analysis
// discovers them and flattens them into a report.
type ScoreFile struct {
	source  m.Source
	ignored ignoreIndex
	scopes  []*Scope
}

// NewScoreFile creates a collector for source. Ignore directives found in
// comments suppress matching scopes from the flattened report.
func NewScoreFile(source m.Source, comments []m.Comment) *ScoreFile {
	return &ScoreFile{
		source:  source,
		ignored: buildIgnoreIndex(comments),
	}
}

// Add records a scope. The engine calls this once per scope in creation
// order, so the whole-file scope is always first.
func (f *ScoreFile) Add(scope *Scope) {
	f.scopes = append(f.scopes, scope)
}

// Report flattens the collected scopes into the file's result. Rows are read
// after the analysis finished, so each carries its final rolled-up score.
// Suppressed scopes lose their row but still count toward enclosing scopes.
func (f *ScoreFile) Report() m.FileScore {
	scopes := make([]m.ScopeScore, 0, len(f.scopes))

	for _, scope := range f.scopes {
		if f.ignored.ignores(scope.Location()) {
			continue
		}

		scopes = append(scopes, scope.row())
	}

	return m.FileScore{
		File:   f.source.Origin,
		Hash:   f.source.Hash,
		Scopes: scopes,
	}
}
