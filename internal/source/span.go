package source

import "fmt"

// Span is a half-open byte range [Start, End) within one file, the unit
// every token and AST node is tagged with for diagnostics.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the span's width in bytes.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span that contains both s and other,
// provided they share a file; spans from different files just return s
// unchanged since "covering" across files is meaningless. This is what
// the parser uses to widen a node's span to include a just-parsed
// subexpression.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
