// Package lexer turns a source.File into a nested token.Stream.
//
// The lexer's signature feature relative to a conventional flat-token
// scanner is that brace/bracket/paren groups are lexed recursively: the
// group's contents become their own complete token.Stream, terminated by
// their own EndOfStream, nested inside a single Braces/Brackets/
// Parenthesis tree in the parent stream.
package lexer

import (
	"fmt"

	"lotl/internal/diag"
	"lotl/internal/result"
	"lotl/internal/source"
	"lotl/internal/token"
)

// Lex scans f and returns the resulting token stream paired with any
// diagnostics produced while scanning.
func Lex(f *source.File) result.Results[*token.Stream] {
	st := &state{cur: NewCursor(f)}
	stream := st.lexStream(0)
	return result.New(stream, st.diags)
}

type state struct {
	cur   Cursor
	diags []diag.Diagnostic
}

// lexStream consumes tokens until either:
//   - terminator == 0 and the input is exhausted, or
//   - terminator != 0 and that byte is consumed as the group's closer.
//
// In both cases the returned stream ends with exactly one EndOfStream
// tree.
func (st *state) lexStream(terminator byte) *token.Stream {
	stream := &token.Stream{}
	for {
		st.skipWhitespace()

		if st.cur.EOF() {
			if terminator != 0 {
				st.report(diag.LexUnexpectedEOF, st.pointSpan(),
					fmt.Sprintf("unexpected end of file while looking for closing %q", terminator))
			}
			break
		}

		if terminator != 0 && st.cur.Peek() == terminator {
			st.cur.Bump()
			break
		}

		b := st.cur.Peek()
		switch {
		case isIdentStart(b):
			stream.Trees = append(stream.Trees, st.scanIdent())
		case isDigit(b):
			stream.Trees = append(stream.Trees, st.scanNumeric())
		case b == '{':
			stream.Trees = append(stream.Trees, st.scanGroup('{', '}', token.Braces))
		case b == '(':
			stream.Trees = append(stream.Trees, st.scanGroup('(', ')', token.Parenthesis))
		case b == '[':
			stream.Trees = append(stream.Trees, st.scanGroup('[', ']', token.Brackets))
		case b == '-':
			stream.Trees = append(stream.Trees, st.scanMinusOrArrow())
		default:
			if k, ok := token.LookupPunct(b); ok {
				mark := st.cur.Mark()
				st.cur.Bump()
				stream.Trees = append(stream.Trees, token.Tree{Kind: k, Span: st.cur.SpanFrom(mark)})
				continue
			}
			mark := st.cur.Mark()
			st.cur.Bump()
			st.report(diag.LexInvalidChar, st.cur.SpanFrom(mark), fmt.Sprintf("invalid character %q", rune(b)))
		}
	}
	stream.Trees = append(stream.Trees, token.Tree{Kind: token.EndOfStream, Span: st.pointSpan()})
	return stream
}

func (st *state) scanGroup(open, closeB byte, kind token.Kind) token.Tree {
	mark := st.cur.Mark()
	st.cur.Bump() // consume the opener
	inner := st.lexStream(closeB)
	return token.Tree{Kind: kind, Span: st.cur.SpanFrom(mark), Group: inner}
}

func (st *state) scanIdent() token.Tree {
	mark := st.cur.Mark()
	start := st.cur.Off
	for !st.cur.EOF() && isIdentCont(st.cur.Peek()) {
		st.cur.Bump()
	}
	text := string(st.cur.File.Content[start:st.cur.Off])
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Tree{Kind: kw, Span: st.cur.SpanFrom(mark), Text: text}
	}
	return token.Tree{Kind: token.Ident, Span: st.cur.SpanFrom(mark), Text: text}
}

func (st *state) scanNumeric() token.Tree {
	mark := st.cur.Mark()
	start := st.cur.Off
	for !st.cur.EOF() && isDigit(st.cur.Peek()) {
		st.cur.Bump()
	}
	text := string(st.cur.File.Content[start:st.cur.Off])
	return token.Tree{Kind: token.Numeric, Span: st.cur.SpanFrom(mark), Text: text}
}

func (st *state) scanMinusOrArrow() token.Tree {
	mark := st.cur.Mark()
	st.cur.Bump() // '-'
	if st.cur.Eat('>') {
		return token.Tree{Kind: token.Arrow, Span: st.cur.SpanFrom(mark)}
	}
	return token.Tree{Kind: token.Minus, Span: st.cur.SpanFrom(mark)}
}

func (st *state) skipWhitespace() {
	for !st.cur.EOF() {
		switch st.cur.Peek() {
		case ' ', '\t', '\n', '\r':
			st.cur.Bump()
		default:
			return
		}
	}
}

func (st *state) pointSpan() source.Span {
	return source.Span{File: st.cur.File.ID, Start: st.cur.Off, End: st.cur.Off}
}

func (st *state) report(code diag.Code, span source.Span, msg string) {
	st.diags = append(st.diags, diag.Diagnostic{Severity: diag.SevError, Code: code, Message: msg, Primary: span})
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
