package token

import "lotl/internal/source"

// Tree is a single node of a token tree: a TokenKind paired with the span
// it occupies in the source file. Ident/Numeric/StringLiteral/Comment
// carry their raw text in Text; Braces/Brackets/Parenthesis carry a
// nested Stream in Group instead.
type Tree struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Group *Stream
}

// Stream is an ordered sequence of token trees, terminated by exactly
// one EndOfStream tree. Nested groups (Braces/Brackets/Parenthesis) own
// their own complete Stream with its own trailing EndOfStream.
type Stream struct {
	Trees []Tree
}

// Len returns the number of trees in the stream, including the
// terminating EndOfStream.
func (s *Stream) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Trees)
}

// At returns the tree at index i, or the terminating EndOfStream tree if
// i is out of range.
func (s *Stream) At(i int) Tree {
	if s == nil || i < 0 || i >= len(s.Trees) {
		return Tree{Kind: EndOfStream}
	}
	return s.Trees[i]
}
