package codegen

import (
	"lotl/internal/ast"
	"lotl/internal/ir"
)

// toLLVM maps a resolved AstType to its LLVM counterpart. TypeVar and
// Unresolved have no LLVM representation: they mean inference left the
// type unsolved or the parser never recognized it, and codegen can only
// refuse.
func toLLVM(t ast.AstType) (ir.Type, bool) {
	switch t.Kind {
	case ast.Int32:
		return ir.Integer{Width: 32}, true
	case ast.Int64:
		return ir.Integer{Width: 64}, true
	case ast.Float32:
		return ir.Float{}, true
	case ast.Float64:
		return ir.Double{}, true
	case ast.Void:
		return ir.Void{}, true
	default:
		return nil, false
	}
}
