// Package codegen lowers a parsed, type-checked module to LLVM textual
// IR via internal/irbuilder. A function whose return type, parameter
// types, or body cannot be lowered is diagnosed and dropped from the
// output module entirely; the rest of the module still generates.
package codegen

import (
	"fmt"

	"lotl/internal/ast"
	"lotl/internal/diag"
	"lotl/internal/infer"
	"lotl/internal/ir"
	"lotl/internal/irbuilder"
	"lotl/internal/parser"
	"lotl/internal/result"
	"lotl/internal/source"
)

// Generate walks mod's definitions and emits an irbuilder.Module,
// consulting types for the type of every expression inference visited.
func Generate(mod *parser.Module, types *infer.Context) result.Results[*irbuilder.Module] {
	g := &generator{exprs: mod.Exprs, types: types, out: irbuilder.NewModule()}
	g.definitions(mod.Definitions)
	return result.New(g.out, g.diags)
}

// generator walks the definition tree; its diagnostics accumulate
// across every function, successful or skipped.
type generator struct {
	exprs *ast.IdGraph[ast.Expr]
	types *infer.Context
	out   *irbuilder.Module
	diags []diag.Diagnostic
}

func (g *generator) report(code diag.Code, span source.Span, msg string) {
	g.diags = append(g.diags, diag.Diagnostic{Severity: diag.SevError, Code: code, Message: msg, Primary: span})
}

func (g *generator) definitions(defs []ast.AstDefinition) {
	for _, def := range defs {
		switch def.Kind {
		case ast.DefFunction:
			g.function(def)
		case ast.DefNamespace:
			g.definitions(def.Namespace.Members)
		}
	}
}

// definitionSpan anchors a signature-level diagnostic. AstDefinition
// carries no span of its own, so this falls back to the first
// statement's span, or the zero span for a bodyless declaration.
func (g *generator) definitionSpan(def ast.AstDefinition) source.Span {
	if def.Function != nil {
		for _, id := range def.Function.Statements {
			if node, ok := g.exprs.Get(ast.ID(id)); ok {
				return node.Span()
			}
		}
	}
	return source.Span{}
}

// params resolves a function's parameter types to LLVM, failing the
// whole function on the first unsupported one.
func (g *generator) params(def ast.AstDefinition) ([]irbuilder.Param, bool) {
	params := make([]irbuilder.Param, 0, len(def.Function.Parameters))
	for i, p := range def.Function.Parameters {
		pty, ok := toLLVM(p)
		if !ok {
			g.report(diag.CodegenUnsupportedType, g.definitionSpan(def),
				fmt.Sprintf("function %q has a parameter type %s that cannot be lowered to LLVM", def.Name, p.String()))
			return nil, false
		}
		params = append(params, irbuilder.Param{Name: fmt.Sprintf("p%d", i), Typ: pty})
	}
	return params, true
}

// function lowers one function definition. A declaration (no body) is
// still emitted as a `define` with an empty entry block; no bodyless
// `declare` form is produced. A function with a body that fails partway
// through is diagnosed and dropped rather than emitted half-formed.
func (g *generator) function(def ast.AstDefinition) {
	retTy, ok := toLLVM(def.Function.Returns)
	if !ok {
		g.report(diag.CodegenUnsupportedType, g.definitionSpan(def),
			fmt.Sprintf("function %q has a return type %s that cannot be lowered to LLVM", def.Name, def.Function.Returns.String()))
		return
	}
	params, ok := g.params(def)
	if !ok {
		return
	}

	fn := irbuilder.NewFunction(def.Name, retTy, params)
	if !def.Function.HasBody {
		g.out.AddFunction(fn)
		return
	}

	l := &lowerer{gen: g, slots: make(map[string]ir.Value)}
	block := fn.Entry
	for _, stmt := range def.Function.Statements {
		if l.failed {
			break
		}
		block = l.statement(block, stmt)
	}
	if l.failed {
		return
	}
	if _, void := retTy.(ir.Void); void && !blockTerminated(block) {
		block.RetVoid()
	}
	g.out.AddFunction(fn)
}
