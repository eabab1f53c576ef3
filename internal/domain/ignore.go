package domain

import (
	"strings"

	m "github.com/mouse-blink/heft/internal/model"
)

const ignoreDirective = "heft:ignore"

// ignoreIndex records the source lines whose scopes are suppressed from
// reports. Suppression only filters reported rows; scores still accumulate
// into enclosing scopes so totals stay honest.
type ignoreIndex struct {
	lines map[int]struct{}
}

// buildIgnoreIndex scans comments for ignore directives. A comment with code
// before it on its line targets that same line; a comment alone on its line
// targets the line below it.
func buildIgnoreIndex(comments []m.Comment) ignoreIndex {
	idx := ignoreIndex{lines: map[int]struct{}{}}

	for _, comment := range comments {
		if !isIgnoreDirective(comment.Text) {
			continue
		}

		target := comment.Line
		if comment.Leading {
			target = comment.Line + 1
		}

		idx.lines[target] = struct{}{}
	}

	return idx
}

// ignores reports whether a scope starting at line is suppressed. The
// whole-file scope (line 0) never is.
func (idx ignoreIndex) ignores(line int) bool {
	if line == 0 {
		return false
	}

	_, ok := idx.lines[line]

	return ok
}

// isIgnoreDirective strips comment markers and reports whether the remaining
// text begins with the ignore directive.
func isIgnoreDirective(text string) bool {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	}

	return strings.HasPrefix(s, ignoreDirective)
}
