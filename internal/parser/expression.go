package parser

import (
	"lotl/internal/ast"
	"lotl/internal/source"
	"lotl/internal/token"
)

// parseExpr is the entry point of the expression grammar: expr := flow.
func (p *parser) parseExpr() ast.ExprID {
	switch {
	case p.at(token.Braces):
		return p.parseBlock()
	case p.at(token.KwReturn):
		return p.parseReturns()
	case p.at(token.KwIf):
		return p.parseIf()
	case p.at(token.KwFor):
		return p.parseFor()
	case p.at(token.KwWhile):
		return p.parseWhile()
	default:
		return p.parseAssign()
	}
}

// parseExprOpt adapts parseExpr to the (T, bool) shape the series
// helpers expect. parseExpr never fails outright (it substitutes a
// sentinel on malformed input), so ok is always true.
func (p *parser) parseExprOpt() (ast.ExprID, bool) {
	return p.parseExpr(), true
}

// assign := term ('=' expr)?
func (p *parser) parseAssign() ast.ExprID {
	lhs := p.parseTerm()
	if !p.at(token.Assign) {
		return lhs
	}
	span := p.advance().Span
	rhs := p.parseExpr()
	base := ast.NewBase(span.Cover(p.lastSpan()))
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.Storage{Base: base, Ptr: lhs, Value: rhs}
	})
}

// term := factor (('+' | '-') factor)*
func (p *parser) parseTerm() ast.ExprID {
	lhs := p.parseFactor()
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.OpAdd
		if p.at(token.Minus) {
			op = ast.OpSub
		}
		opTok := p.advance()
		rhs := p.parseFactor()
		lhs = p.registerBinary(op, lhs, rhs, opTok)
	}
	return lhs
}

// factor := app (('*' | '/') app)*
func (p *parser) parseFactor() ast.ExprID {
	lhs := p.parseApp()
	for p.at(token.Star) || p.at(token.Slash) {
		op := ast.OpMul
		if p.at(token.Slash) {
			op = ast.OpDiv
		}
		opTok := p.advance()
		rhs := p.parseApp()
		lhs = p.registerBinary(op, lhs, rhs, opTok)
	}
	return lhs
}

func (p *parser) registerBinary(op ast.BinaryOp, lhs, rhs ast.ExprID, opTok token.Tree) ast.ExprID {
	base := ast.NewBase(opTok.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.Binary{Base: base, Op: op, Lhs: lhs, Rhs: rhs, OpSpan: opTok.Span}
	})
}

// app := base (call | subscript | '.' ident | '::' ident)*
func (p *parser) parseApp() ast.ExprID {
	obj := p.parseBase()
	for {
		switch {
		case p.at(token.Parenthesis):
			obj = p.parseCall(obj)
		case p.at(token.Brackets):
			obj = p.parseSubscript(obj)
		case p.at(token.Dot):
			obj = p.parseFieldAccess(obj)
		case p.at(token.Colon) && p.peekAt(1).Kind == token.Colon:
			obj = p.parseNamespaceAccess(obj)
		default:
			return obj
		}
	}
}

func (p *parser) parseCall(callee ast.ExprID) ast.ExprID {
	group := p.advance()
	args := parseDelimitedSeries(p, group.Group, token.Comma, (*parser).parseExprOpt)
	base := ast.NewBase(group.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.Invocation{Base: base, Callee: callee, Args: args}
	})
}

func (p *parser) parseSubscript(obj ast.ExprID) ast.ExprID {
	group := p.advance()
	index := parseSingleStream(p, group.Group, (*parser).parseExpr)
	base := ast.NewBase(group.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.Subscript{Base: base, Obj: obj, Index: index}
	})
}

func (p *parser) parseFieldAccess(obj ast.ExprID) ast.ExprID {
	dot := p.advance()
	field := "__unnamed"
	if tok, ok := p.expect(token.Ident); ok {
		field = tok.Text
	}
	base := ast.NewBase(dot.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.FieldAccess{Base: base, Obj: obj, Field: field}
	})
}

func (p *parser) parseNamespaceAccess(obj ast.ExprID) ast.ExprID {
	start := p.advance() // first ':'
	p.advance()          // second ':'
	path := "__unnamed"
	if tok, ok := p.expect(token.Ident); ok {
		path = tok.Text
	}
	base := ast.NewBase(start.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.NamespaceAccess{Base: base, Obj: obj, Path: path}
	})
}

// base := numeric | identifier | '(' expr ')'
func (p *parser) parseBase() ast.ExprID {
	switch {
	case p.at(token.Numeric):
		tok := p.advance()
		base := ast.NewBase(tok.Span)
		return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
			base.ID = ast.ExprID(id)
			return ast.Numeric{Base: base, Literal: tok.Text}
		})
	case p.at(token.Ident):
		tok := p.advance()
		base := ast.NewBase(tok.Span)
		return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
			base.ID = ast.ExprID(id)
			return ast.Identifier{Base: base, Name: tok.Text}
		})
	case p.at(token.Parenthesis):
		group := p.advance()
		return parseSingleStream(p, group.Group, (*parser).parseExpr)
	default:
		p.expectedKindFoundKind([]token.Kind{token.Numeric, token.Ident, token.Parenthesis})
		span := p.peek().Span
		p.advance()
		base := ast.NewBase(span)
		return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
			base.ID = ast.ExprID(id)
			return ast.Numeric{Base: base, Literal: ""}
		})
	}
}

// lastSpan is a best-effort span for diagnostics that straddle a
// just-parsed subexpression; it is not load-bearing for correctness.
func (p *parser) lastSpan() source.Span {
	if p.idx == 0 {
		return p.peek().Span
	}
	return p.stream.At(p.idx - 1).Span
}
