// Package infer performs Lotl's two-pass type inference: a signature
// pass records every function's (parameters, returns) up front, then a
// body pass walks each function with a body, threading a lexical scope
// stack through block/if/for/while so bindings scope the way a C-like
// language expects.
package infer

import (
	"strings"

	"lotl/internal/ast"
	"lotl/internal/diag"
	"lotl/internal/parser"
	"lotl/internal/result"
	"lotl/internal/source"
)

// FunctionSignature is the recorded shape of a function definition:
// just enough to type-check call sites once invocation typing is wired
// up (see the codegen design notes for why it is not yet).
type FunctionSignature struct {
	Parameters []ast.AstType
	Returns    ast.AstType
}

// Context is TypeContext: the accumulated result of inference, keyed by
// expression and by definition.
type Context struct {
	exprTypes map[ast.ID]ast.AstType
	functions map[ast.ID]FunctionSignature
	diags     []diag.Diagnostic
}

func newContext() *Context {
	return &Context{
		exprTypes: make(map[ast.ID]ast.AstType),
		functions: make(map[ast.ID]FunctionSignature),
	}
}

// TypeOfExpr returns the type recorded for id, if inference has visited
// it.
func (c *Context) TypeOfExpr(id ast.ExprID) (ast.AstType, bool) {
	t, ok := c.exprTypes[ast.ID(id)]
	return t, ok
}

// Signature returns the recorded signature of a function definition.
func (c *Context) Signature(id ast.DefinitionID) (FunctionSignature, bool) {
	sig, ok := c.functions[ast.ID(id)]
	return sig, ok
}

func (c *Context) report(code diag.Code, span source.Span, msg string) {
	c.diags = append(c.diags, diag.Diagnostic{Severity: diag.SevError, Code: code, Message: msg, Primary: span})
}

// Infer runs both passes over mod and returns the resulting Context.
func Infer(mod *parser.Module) result.Results[*Context] {
	ctx := newContext()
	registerSignatures(ctx, mod.Definitions)
	inferBodies(ctx, mod.Exprs, mod.Definitions)
	return result.New(ctx, ctx.diags)
}

// registerSignatures is the signature pass: for each function
// definition, record (parameters, returns); namespace definitions
// recurse into their members.
func registerSignatures(ctx *Context, defs []ast.AstDefinition) {
	for _, def := range defs {
		switch def.Kind {
		case ast.DefFunction:
			ctx.functions[ast.ID(def.ID)] = FunctionSignature{
				Parameters: def.Function.Parameters,
				Returns:    def.Function.Returns,
			}
		case ast.DefNamespace:
			registerSignatures(ctx, def.Namespace.Members)
		}
	}
}

// inferBodies is the body pass: for each function with a body, infer
// every top-level statement under a fresh scope stack.
func inferBodies(ctx *Context, exprs *ast.IdGraph[ast.Expr], defs []ast.AstDefinition) {
	for _, def := range defs {
		switch def.Kind {
		case ast.DefFunction:
			if !def.Function.HasBody {
				continue
			}
			scopes := newScopeStack()
			for _, stmt := range def.Function.Statements {
				inferExpr(ctx, exprs, scopes, stmt)
			}
		case ast.DefNamespace:
			inferBodies(ctx, exprs, def.Namespace.Members)
		}
	}
}

// inferExpr infers the type of id, recording it in ctx. Re-inferring an
// expression whose ID already has a recorded type returns the cached
// type without walking its children.
func inferExpr(ctx *Context, exprs *ast.IdGraph[ast.Expr], scopes *scopeStack, id ast.ExprID) ast.AstType {
	if t, ok := ctx.TypeOfExpr(id); ok {
		return t
	}

	node, ok := exprs.Get(ast.ID(id))
	if !ok {
		return ast.AstType{Kind: ast.Void}
	}

	var t ast.AstType
	switch n := node.(type) {
	case ast.Identifier:
		if found, ok := scopes.lookup(n.Name); ok {
			t = found
		} else {
			ctx.report(diag.TypeVariableNotFound, n.Span(), "identifier \""+n.Name+"\" is not bound in any enclosing scope")
			t = ast.AstType{Kind: ast.Void}
		}

	case ast.Numeric:
		if strings.Contains(n.Literal, ".") {
			t = ast.AstType{Kind: ast.Float64}
		} else {
			t = ast.AstType{Kind: ast.Int64}
		}

	case ast.Binary:
		lt := inferExpr(ctx, exprs, scopes, n.Lhs)
		rt := inferExpr(ctx, exprs, scopes, n.Rhs)
		if rt != lt {
			ctx.report(diag.TypeMismatch, n.OpSpan, "expected "+lt.String()+", found "+rt.String())
		}
		t = lt

	case ast.Unary:
		t = inferExpr(ctx, exprs, scopes, n.Arg)

	case ast.Invocation, ast.FieldAccess, ast.NamespaceAccess, ast.Subscript:
		// Placeholders: resolving a callee's signature, a field's type,
		// or an element type requires the object model these forms
		// would type-check against, which this revision does not yet
		// build. They type as Void until that model exists.
		t = ast.AstType{Kind: ast.Void}

	case ast.Storage:
		value := inferExpr(ctx, exprs, scopes, n.Value)
		if ptrNode, ok := exprs.Get(ast.ID(n.Ptr)); ok {
			if ident, ok := ptrNode.(ast.Identifier); ok {
				scopes.define(ident.Name, value)
			}
		}
		t = ast.AstType{Kind: ast.Void}

	case ast.Returns:
		inferExpr(ctx, exprs, scopes, n.Expr)
		t = ast.AstType{Kind: ast.Void}

	case ast.Block:
		scopes.push()
		for _, e := range n.Exprs {
			inferExpr(ctx, exprs, scopes, e)
		}
		scopes.pop()
		t = ast.AstType{Kind: ast.Void}

	case ast.If:
		inferExpr(ctx, exprs, scopes, n.Cond)
		scopes.push()
		inferExpr(ctx, exprs, scopes, n.Then)
		scopes.pop()
		if n.Otherwise != nil {
			scopes.push()
			inferExpr(ctx, exprs, scopes, *n.Otherwise)
			scopes.pop()
		}
		t = ast.AstType{Kind: ast.Void}

	case ast.For:
		inferExpr(ctx, exprs, scopes, n.Iterable)
		scopes.push()
		scopes.define(n.Var, ast.AstType{Kind: ast.Void})
		inferExpr(ctx, exprs, scopes, n.Body)
		scopes.pop()
		t = ast.AstType{Kind: ast.Void}

	case ast.While:
		inferExpr(ctx, exprs, scopes, n.Cond)
		scopes.push()
		inferExpr(ctx, exprs, scopes, n.Body)
		scopes.pop()
		t = ast.AstType{Kind: ast.Void}

	default:
		t = ast.AstType{Kind: ast.Void}
	}

	ctx.exprTypes[ast.ID(id)] = t
	return t
}
