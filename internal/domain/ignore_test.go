package domain

import (
	"testing"

	m "github.com/mouse-blink/heft/internal/model"
)

func TestIsIgnoreDirective(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{text: "// heft:ignore", want: true},
		{text: "//heft:ignore", want: true},
		{text: "/* heft:ignore */", want: true},
		{text: "  // heft:ignore generated dispatch table", want: true},
		{text: "// heft: ignore", want: false},
		{text: "// plain comment", want: false},
		{text: "/* block comment */", want: false},
	}

	for _, tt := range tests {
		if got := isIgnoreDirective(tt.text); got != tt.want {
			t.Fatalf("isIgnoreDirective(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestBuildIgnoreIndex_LeadingTargetsNextLine(t *testing.T) {
	idx := buildIgnoreIndex([]m.Comment{
		{Line: 3, Leading: true, Text: "// heft:ignore"},
	})

	if !idx.ignores(4) {
		t.Fatalf("expected line 4 to be ignored")
	}
	if idx.ignores(3) {
		t.Fatalf("did not expect the comment's own line to be ignored")
	}
}

func TestBuildIgnoreIndex_TrailingTargetsOwnLine(t *testing.T) {
	idx := buildIgnoreIndex([]m.Comment{
		{Line: 7, Leading: false, Text: "// heft:ignore"},
	})

	if !idx.ignores(7) {
		t.Fatalf("expected line 7 to be ignored")
	}
	if idx.ignores(8) {
		t.Fatalf("did not expect line 8 to be ignored")
	}
}

func TestBuildIgnoreIndex_SkipsOrdinaryComments(t *testing.T) {
	idx := buildIgnoreIndex([]m.Comment{
		{Line: 1, Leading: true, Text: "// configures retries"},
		{Line: 5, Leading: false, Text: "/* legacy */"},
	})

	for line := 1; line <= 6; line++ {
		if idx.ignores(line) {
			t.Fatalf("did not expect line %d to be ignored", line)
		}
	}
}

func TestIgnoreIndex_WholeFileScopeNeverIgnored(t *testing.T) {
	idx := ignoreIndex{lines: map[int]struct{}{0: {}}}

	if idx.ignores(0) {
		t.Fatalf("the whole-file scope must not be suppressible")
	}
}
