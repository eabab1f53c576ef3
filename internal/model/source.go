package model

// Path represents a file system path.
type Path string

// Source represents a JavaScript source file selected for analysis.
type Source struct {
	// Origin is the absolute path of the file.
	Origin Path
	// Hash is the SHA-256 fingerprint of the file contents, used to name
	// persisted reports so stale results are never mistaken for current
	// ones.
	Hash string
}

// Comment is a source comment surfaced by the parser adapter so ignore
// directives can be matched against scope locations.
type Comment struct {
	// Line is the 1-based line the comment starts on.
	Line int
	// Leading is true when nothing but whitespace precedes the comment on
	// its line, in which case a directive applies to the following line.
	Leading bool
	Text    string
}
