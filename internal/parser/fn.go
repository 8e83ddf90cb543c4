package parser

import (
	"lotl/internal/ast"
	"lotl/internal/diag"
	"lotl/internal/token"
)

var builtinReturnTypes = map[string]ast.TypeKind{
	"i32":  ast.Int32,
	"i64":  ast.Int64,
	"f32":  ast.Float32,
	"f64":  ast.Float64,
	"void": ast.Void,
}

// parseHeader parses one top-level header: a function or a namespace.
// `namespace` is matched on its spelling, not as a reserved keyword, so
// it stays available as an ordinary identifier everywhere else.
func (p *parser) parseHeader() (ast.AstDefinition, bool) {
	cur := p.peek()
	switch {
	case cur.Kind == token.KwFunc:
		return p.parseFunction()
	case cur.Kind == token.Ident && cur.Text == "namespace":
		return p.parseNamespace()
	default:
		p.report(diag.SynExpectedKind, cur.Span, "expected func, or namespace, found "+cur.Kind.String())
		p.advance()
		return ast.AstDefinition{}, false
	}
}

func (p *parser) parseFunction() (ast.AstDefinition, bool) {
	p.advance() // `func`

	name := "__unnamed"
	if nameTok, ok := p.expect(token.Ident); ok {
		name = nameTok.Text
	}

	var generics []string
	if p.at(token.Brackets) {
		group := p.advance()
		generics = parseDelimitedSeries(p, group.Group, token.Comma, (*parser).parseGenericName)
	}

	var params []ast.AstType
	if group, ok := p.expect(token.Parenthesis); ok {
		// Parameter parsing is a stub in this revision: the parenthesis
		// group's contents are accepted but not interpreted, always
		// producing the empty parameter list.
		_ = group
	}

	returns := ast.AstType{Kind: ast.Void}
	if _, ok := p.expect(token.Arrow); ok {
		returns = p.parseReturnType(generics)
	}

	var statements []ast.ExprID
	hasBody := false
	if p.at(token.Braces) {
		group := p.advance()
		statements = parseDelimitedSeries(p, group.Group, token.Semicolon, (*parser).parseExprOpt)
		hasBody = true
	}

	def := ast.AstDefinition{
		ID:   ast.NewDefinitionID(name),
		Name: name,
		Kind: ast.DefFunction,
		Function: &ast.FunctionDef{
			Parameters: params,
			Generics:   generics,
			Returns:    returns,
			Statements: statements,
			HasBody:    hasBody,
		},
	}
	p.checkDuplicate(def.ID, name)
	return def, true
}

func (p *parser) parseNamespace() (ast.AstDefinition, bool) {
	p.advance() // `namespace`

	name := "__unnamed"
	if nameTok, ok := p.expect(token.Ident); ok {
		name = nameTok.Text
	}

	var members []ast.AstDefinition
	if group, ok := p.expect(token.Braces); ok {
		members = parseUnlimitedSeries(p, group.Group, (*parser).parseHeader)
	}

	def := ast.AstDefinition{
		ID:        ast.NewDefinitionID(name),
		Name:      name,
		Kind:      ast.DefNamespace,
		Namespace: &ast.NamespaceDef{Members: members},
	}
	p.checkDuplicate(def.ID, name)
	return def, true
}

func (p *parser) checkDuplicate(id ast.DefinitionID, name string) {
	key := ast.ID(id)
	if existing, ok := p.seenDef[key]; ok {
		p.report(diag.SynDuplicateDefinition, p.peek().Span, "duplicate top-level definition \""+existing+"\"")
		return
	}
	p.seenDef[key] = name
}

func (p *parser) parseGenericName() (string, bool) {
	if tok, ok := p.expect(token.Ident); ok {
		return tok.Text, true
	}
	return "", false
}

// parseReturnType resolves an identifier naming a return type: a
// builtin, a generic parameter (TypeVar), or an otherwise-unknown name
// (Unresolved).
func (p *parser) parseReturnType(generics []string) ast.AstType {
	tok, ok := p.expect(token.Ident)
	if !ok {
		return ast.AstType{Kind: ast.Void}
	}
	if kind, ok := builtinReturnTypes[tok.Text]; ok {
		return ast.AstType{Kind: kind}
	}
	for _, g := range generics {
		if g == tok.Text {
			return ast.AstType{Kind: ast.TypeVar, Name: tok.Text}
		}
	}
	return ast.AstType{Kind: ast.Unresolved, Name: tok.Text}
}
