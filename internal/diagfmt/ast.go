package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"lotl/internal/ast"
)

// FormatAST writes defs as an indented tree, resolving expression bodies
// through exprs. One definition per top-level line, statements/expressions
// nested beneath.
func FormatAST(w io.Writer, defs []ast.AstDefinition, exprs *ast.IdGraph[ast.Expr]) error {
	p := &astPrinter{w: w, exprs: exprs}
	p.definitions(defs, 0)
	return p.err
}

type astPrinter struct {
	w     io.Writer
	exprs *ast.IdGraph[ast.Expr]
	err   error
}

func (p *astPrinter) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	_, err := fmt.Fprintf(p.w, "%s%s\n", indent, fmt.Sprintf(format, args...))
	if err != nil {
		p.err = err
	}
}

func (p *astPrinter) definitions(defs []ast.AstDefinition, depth int) {
	for _, def := range defs {
		switch def.Kind {
		case ast.DefNamespace:
			p.line(depth, "namespace %s", def.Name)
			p.definitions(def.Namespace.Members, depth+1)
		case ast.DefFunction:
			p.function(def, depth)
		}
	}
}

func (p *astPrinter) function(def ast.AstDefinition, depth int) {
	params := make([]string, len(def.Function.Parameters))
	for i, pt := range def.Function.Parameters {
		params[i] = pt.String()
	}
	generics := ""
	if len(def.Function.Generics) > 0 {
		generics = "<" + strings.Join(def.Function.Generics, ", ") + ">"
	}
	p.line(depth, "func %s%s(%s) -> %s", def.Name, generics, strings.Join(params, ", "), def.Function.Returns.String())
	if !def.Function.HasBody {
		return
	}
	for _, id := range def.Function.Statements {
		p.expr(ast.ExprID(id), depth+1)
	}
}

func (p *astPrinter) expr(id ast.ExprID, depth int) {
	node, ok := p.exprs.Get(ast.ID(id))
	if !ok {
		p.line(depth, "<missing %s>", ast.ID(id))
		return
	}
	switch e := node.(type) {
	case ast.Identifier:
		p.line(depth, "Identifier %s", e.Name)
	case ast.Numeric:
		p.line(depth, "Numeric %s", e.Literal)
	case ast.Binary:
		p.line(depth, "Binary %s", e.Op.String())
		p.expr(e.Lhs, depth+1)
		p.expr(e.Rhs, depth+1)
	case ast.Unary:
		p.line(depth, "Unary %s", e.Op.String())
		p.expr(e.Arg, depth+1)
	case ast.Invocation:
		p.line(depth, "Invocation")
		p.expr(e.Callee, depth+1)
		for _, a := range e.Args {
			p.expr(a, depth+1)
		}
	case ast.FieldAccess:
		p.line(depth, "FieldAccess .%s", e.Field)
		p.expr(e.Obj, depth+1)
	case ast.NamespaceAccess:
		p.line(depth, "NamespaceAccess ::%s", e.Path)
		p.expr(e.Obj, depth+1)
	case ast.Subscript:
		p.line(depth, "Subscript")
		p.expr(e.Obj, depth+1)
		p.expr(e.Index, depth+1)
	case ast.Block:
		p.line(depth, "Block")
		for _, c := range e.Exprs {
			p.expr(c, depth+1)
		}
	case ast.If:
		p.line(depth, "If")
		p.expr(e.Cond, depth+1)
		p.expr(e.Then, depth+1)
		if e.Otherwise != nil {
			p.expr(*e.Otherwise, depth+1)
		}
	case ast.For:
		p.line(depth, "For %s", e.Var)
		p.expr(e.Iterable, depth+1)
		p.expr(e.Body, depth+1)
	case ast.While:
		p.line(depth, "While")
		p.expr(e.Cond, depth+1)
		p.expr(e.Body, depth+1)
	case ast.Storage:
		hint := ""
		if e.TypeHint != nil {
			hint = ": " + e.TypeHint.String()
		}
		p.line(depth, "Storage%s", hint)
		p.expr(e.Ptr, depth+1)
		p.expr(e.Value, depth+1)
	case ast.Returns:
		p.line(depth, "Returns")
		p.expr(e.Expr, depth+1)
	default:
		p.line(depth, "<unknown expr kind %d>", node.ExprKind())
	}
}
