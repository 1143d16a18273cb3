// Package source holds the immutable source-text container and the byte-range
// spans that every AST node and every TIR signature carries for diagnostics.
package source

import "fmt"

// File is a path (as a sequence of segments, e.g. ["app", "models", "user"])
// plus the full source text. A File is immutable after construction and is
// shared by reference by every Span and AST node that borrows from it.
type File struct {
	Path []string
	Text string
}

// New builds a File from a dotted or segmented path and its raw text.
func New(path []string, text string) *File {
	return &File{Path: path, Text: text}
}

// PathString renders the path as a dotted name, e.g. "app.models.user".
func (f *File) PathString() string {
	out := ""
	for i, seg := range f.Path {
		if i > 0 {
			out += "."
		}
		out += seg
	}
	return out
}

func (f *File) String() string {
	return fmt.Sprintf("File(%s)", f.PathString())
}

// Span is a byte-range [Start, End) into a specific File. It is attached to
// every AST node and every published signature so diagnostics can point
// back into the original text.
type Span struct {
	Start int
	End   int
	File  *File
}

// NewSpan builds a span over [start, end) of file.
func NewSpan(file *File, start, end int) Span {
	return Span{Start: start, End: end, File: file}
}

// Merge returns the smallest span covering both a and b. Both must share the
// same File; if either is the zero Span, the other is returned unchanged.
func Merge(a, b Span) Span {
	if a.File == nil {
		return b
	}
	if b.File == nil {
		return a
	}
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{Start: start, End: end, File: a.File}
}

// Text returns the raw bytes this span covers.
func (s Span) Text() string {
	if s.File == nil || s.Start < 0 || s.End > len(s.File.Text) || s.Start > s.End {
		return ""
	}
	return s.File.Text[s.Start:s.End]
}

// LineCol resolves the span's start offset to a 1-based line and column,
// counted in bytes from the start of the line. Used only by diagnostic
// rendering; the resolver itself never reasons about line/column.
func (s Span) LineCol() (line, col int) {
	if s.File == nil {
		return 1, 1
	}
	line = 1
	lineStart := 0
	limit := s.Start
	if limit > len(s.File.Text) {
		limit = len(s.File.Text)
	}
	for i := 0; i < limit; i++ {
		if s.File.Text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, s.Start - lineStart + 1
}
