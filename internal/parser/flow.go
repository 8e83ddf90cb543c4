package parser

import (
	"lotl/internal/ast"
	"lotl/internal/source"
	"lotl/internal/token"
)

// Block parses a brace group as a Semicolon-delimited sequence of
// expressions; the sequence becomes the block's Exprs field.
func (p *parser) parseBlock() ast.ExprID {
	group := p.advance()
	exprs := parseDelimitedSeries(p, group.Group, token.Semicolon, (*parser).parseExprOpt)
	return p.registerBlock(group.Span, exprs)
}

func (p *parser) registerBlock(span source.Span, exprs []ast.ExprID) ast.ExprID {
	base := ast.NewBase(span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.Block{Base: base, Exprs: exprs}
	})
}

// If parses `if COND THEN`; `otherwise` defaults to an empty block in
// this revision (no `else` clause is recognized).
func (p *parser) parseIf() ast.ExprID {
	start := p.advance() // `if`
	cond := p.parseExpr()
	then := p.parseExpr()
	otherwise := p.registerBlock(start.Span, nil)

	base := ast.NewBase(start.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.If{Base: base, Cond: cond, Then: then, Otherwise: &otherwise}
	})
}

// For parses `for IDENT : EXPR BODY`.
func (p *parser) parseFor() ast.ExprID {
	start := p.advance() // `for`

	varName := "__unnamed"
	if tok, ok := p.expect(token.Ident); ok {
		varName = tok.Text
	}
	p.expect(token.Colon)
	iterable := p.parseExpr()
	body := p.parseExpr()

	base := ast.NewBase(start.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.For{Base: base, Var: varName, Iterable: iterable, Body: body}
	})
}

// While parses `while COND BODY`.
func (p *parser) parseWhile() ast.ExprID {
	start := p.advance() // `while`
	cond := p.parseExpr()
	body := p.parseExpr()

	base := ast.NewBase(start.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.While{Base: base, Cond: cond, Body: body}
	})
}

// Returns parses `return EXPR`.
func (p *parser) parseReturns() ast.ExprID {
	start := p.advance() // `return`
	inner := p.parseExpr()

	base := ast.NewBase(start.Span)
	return registerExpr(p.exprs, func(id ast.ID) ast.Expr {
		base.ID = ast.ExprID(id)
		return ast.Returns{Base: base, Expr: inner}
	})
}
