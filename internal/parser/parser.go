// Package parser builds an AST by walking the nested token tree the
// lexer produces. Unlike a parser over a flat token list, sub-streams
// (brace/bracket/paren groups) are parsed with their own cursor: a group
// can never read past its own EndOfStream into the tokens that follow
// it in the enclosing stream.
package parser

import (
	"fmt"

	"lotl/internal/ast"
	"lotl/internal/diag"
	"lotl/internal/result"
	"lotl/internal/source"
	"lotl/internal/token"
)

// Module is the parsed output of a file: its top-level definitions and
// the single expression arena every one of them refers into.
type Module struct {
	Definitions []ast.AstDefinition
	Exprs       *ast.IdGraph[ast.Expr]
}

// Parse walks stream (normally the outer stream a lexer produced) and
// returns the resulting Module together with any diagnostics raised
// along the way.
func Parse(stream *token.Stream) result.Results[*Module] {
	p := &parser{
		stream:  stream,
		exprs:   ast.NewIdGraph[ast.Expr](0),
		seenDef: make(map[ast.ID]string),
	}
	defs := parseUnlimitedSeries(p, stream, (*parser).parseHeader)
	return result.New(&Module{Definitions: defs, Exprs: p.exprs}, p.diags)
}

// parser walks one token.Stream. It holds an immutable reference to that
// stream, a cursor into it, and an append-only diagnostics list. Parsing
// a sub-stream (a brace/bracket/paren group) creates a fresh parser that
// shares the expression arena and the duplicate-definition set, so IDs
// and collisions are tracked module-wide.
type parser struct {
	stream  *token.Stream
	idx     int
	diags   []diag.Diagnostic
	exprs   *ast.IdGraph[ast.Expr]
	seenDef map[ast.ID]string
}

func (p *parser) peek() token.Tree {
	return p.stream.At(p.idx)
}

// advance returns the current token and moves the cursor forward,
// unless already sitting on the stream's terminating EndOfStream.
func (p *parser) advance() token.Tree {
	cur := p.peek()
	if cur.Kind != token.EndOfStream {
		p.idx++
	}
	return cur
}

func (p *parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// peekAt looks n trees ahead of the cursor without consuming anything.
func (p *parser) peekAt(n int) token.Tree {
	return p.stream.At(p.idx + n)
}

// expect consumes the current token if it has kind k; otherwise it
// reports ExpectedKindFoundKind against a single expected kind and
// leaves the cursor where it is.
func (p *parser) expect(k token.Kind) (token.Tree, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.expectedKindFoundKind([]token.Kind{k})
	return token.Tree{}, false
}

// expectedKindFoundKind reports a mismatch between one of `expected` and
// the token actually found, rendered as "A, or B, or C".
func (p *parser) expectedKindFoundKind(expected []token.Kind) {
	p.report(diag.SynExpectedKind, p.peek().Span, fmt.Sprintf("expected %s, found %s", joinKinds(expected), p.peek().Kind))
}

func joinKinds(kinds []token.Kind) string {
	s := ""
	for i, k := range kinds {
		if i > 0 {
			s += ", or "
		}
		s += k.String()
	}
	return s
}

func (p *parser) report(code diag.Code, span source.Span, msg string) {
	p.diags = append(p.diags, diag.Diagnostic{Severity: diag.SevError, Code: code, Message: msg, Primary: span})
}

// registerExpr mints a fresh expression ID and stores the node factory
// builds from it, returning the typed ExprID rather than the bare ID
// ast.Register hands back.
func registerExpr(g *ast.IdGraph[ast.Expr], factory func(ast.ID) ast.Expr) ast.ExprID {
	return ast.ExprID(ast.Register(g, factory))
}

// child returns a fresh parser over sub, sharing this parser's
// expression arena and duplicate-definition tracking.
func (p *parser) child(sub *token.Stream) *parser {
	return &parser{stream: sub, exprs: p.exprs, seenDef: p.seenDef}
}

// parseSingleStream runs rule over sub in its own parser and merges its
// diagnostics back into p.
func parseSingleStream[T any](p *parser, sub *token.Stream, rule func(*parser) T) T {
	c := p.child(sub)
	v := rule(c)
	p.diags = append(p.diags, c.diags...)
	return v
}

// parseDelimitedSeries repeats rule over sub, consuming delimiter (or
// EndOfStream) between items. A token found where delimiter was expected
// is diagnosed but parsing continues from the current position.
func parseDelimitedSeries[T any](p *parser, sub *token.Stream, delimiter token.Kind, rule func(*parser) (T, bool)) []T {
	c := p.child(sub)
	var out []T
	for !c.at(token.EndOfStream) {
		before := c.idx
		v, ok := rule(c)
		if ok {
			out = append(out, v)
		}
		switch {
		case c.at(delimiter):
			c.advance()
		case c.at(token.EndOfStream):
			// handled by the loop condition
		default:
			c.expectedKindFoundKind([]token.Kind{delimiter})
		}
		if c.idx == before {
			// rule() consumed nothing: force progress so malformed
			// input can never loop forever.
			c.advance()
		}
	}
	p.diags = append(p.diags, c.diags...)
	return out
}

// parseUnlimitedSeries repeats rule over sub until EndOfStream,
// collecting the results rule reports as present.
func parseUnlimitedSeries[T any](p *parser, sub *token.Stream, rule func(*parser) (T, bool)) []T {
	c := p.child(sub)
	var out []T
	for !c.at(token.EndOfStream) {
		before := c.idx
		v, ok := rule(c)
		if ok {
			out = append(out, v)
		}
		if c.idx == before {
			c.advance()
		}
	}
	p.diags = append(p.diags, c.diags...)
	return out
}
