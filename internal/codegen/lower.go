package codegen

import (
	"fmt"
	"strings"

	"lotl/internal/ast"
	"lotl/internal/diag"
	"lotl/internal/ir"
	"lotl/internal/irbuilder"
	"lotl/internal/source"
)

// lowerer carries one function's worth of state through statement and
// expression lowering: the variable-to-storage-slot map alloca'd
// lazily on first assignment, and a sticky failure flag that turns
// every remaining step into a no-op once a fatal lowering error has
// been diagnosed. This mirrors the generator/function split one level
// down: generator owns the module, lowerer owns one function's body.
type lowerer struct {
	gen    *generator
	slots  map[string]ir.Value
	failed bool
}

// fail records a diagnostic, latches the failure flag, and returns nil
// so callers can write `return l.fail(...)` at any lowering step.
func (l *lowerer) fail(code diag.Code, span source.Span, msg string) ir.Value {
	l.gen.report(code, span, msg)
	l.failed = true
	return nil
}

func (l *lowerer) exprType(id ast.ExprID) (ast.AstType, bool) {
	return l.gen.types.TypeOfExpr(id)
}

// blockTerminated reports whether b's last instruction is a ret, br, or
// unreachable — i.e. whether appending a Goto to join a continuation
// would be reachable dead code.
func blockTerminated(b *irbuilder.BasicBlock) bool {
	if len(b.Instructions) == 0 {
		return false
	}
	last := b.Instructions[len(b.Instructions)-1]
	return strings.HasPrefix(last, "ret ") || last == "ret void" ||
		strings.HasPrefix(last, "br ") || last == "unreachable"
}

// statement lowers one top-level or nested statement. Anything that
// isn't Returns, Storage, or If is an implicit drop: it is lowered for
// its value and the result discarded.
func (l *lowerer) statement(block *irbuilder.BasicBlock, id ast.ExprID) *irbuilder.BasicBlock {
	if l.failed {
		return block
	}
	node, ok := l.gen.exprs.Get(ast.ID(id))
	if !ok {
		return block
	}

	switch n := node.(type) {
	case ast.Returns:
		v := l.value(block, n.Expr)
		if l.failed {
			return block
		}
		block.Ret(v)
		return block

	case ast.Storage:
		return l.storage(block, n)

	case ast.If:
		return l.ifStatement(block, n)

	default:
		l.value(block, id)
		return block
	}
}

// lowerStatements threads block through every id in order, stopping
// early once a fatal error latches l.failed.
func (l *lowerer) lowerStatements(block *irbuilder.BasicBlock, ids []ast.ExprID) *irbuilder.BasicBlock {
	for _, id := range ids {
		if l.failed {
			return block
		}
		block = l.statement(block, id)
	}
	return block
}

// branchBody lowers the body of an if-arm: a Block's statements in
// sequence, or a single bare statement when the grammar allowed one
// without braces.
func (l *lowerer) branchBody(block *irbuilder.BasicBlock, id ast.ExprID) *irbuilder.BasicBlock {
	node, ok := l.gen.exprs.Get(ast.ID(id))
	if !ok {
		return block
	}
	if b, ok := node.(ast.Block); ok {
		return l.lowerStatements(block, b.Exprs)
	}
	return l.statement(block, id)
}

// ifStatement lowers a condition, narrows it to i1, splits into two
// blocks with the handle-style branch, lowers both arms, and joins
// whichever arms didn't already terminate into a fresh continuation
// that becomes the block the caller continues from.
func (l *lowerer) ifStatement(block *irbuilder.BasicBlock, n ast.If) *irbuilder.BasicBlock {
	cond := l.value(block, n.Cond)
	if l.failed {
		return block
	}
	narrowed := block.Trunc(cond, ir.Integer{Width: 1})
	thenBlock, elseBlock := block.BrIfReturning(narrowed)

	thenEnd := l.branchBody(thenBlock, n.Then)
	if l.failed {
		return block
	}
	elseEnd := elseBlock
	if n.Otherwise != nil {
		elseEnd = l.branchBody(elseBlock, *n.Otherwise)
		if l.failed {
			return block
		}
	}

	cont := block.Continuation()
	if !blockTerminated(thenEnd) {
		thenEnd.Goto(cont)
	}
	if !blockTerminated(elseEnd) {
		elseEnd.Goto(cont)
	}
	return cont
}

// storage lowers `ptr = value`, allocating a storage slot for ptr the
// first time it is assigned and reusing it on every later assignment.
func (l *lowerer) storage(block *irbuilder.BasicBlock, n ast.Storage) *irbuilder.BasicBlock {
	value := l.value(block, n.Value)
	if l.failed {
		return block
	}
	ptrNode, ok := l.gen.exprs.Get(ast.ID(n.Ptr))
	if !ok {
		l.fail(diag.CodegenUnsupportedLowering, n.Span(), "assignment target could not be resolved")
		return block
	}
	ident, ok := ptrNode.(ast.Identifier)
	if !ok {
		l.fail(diag.CodegenUnsupportedLowering, ptrNode.Span(), "assignment target must be a plain identifier")
		return block
	}
	slot, exists := l.slots[ident.Name]
	if !exists {
		slot = block.Alloca(value.Type())
		l.slots[ident.Name] = slot
	}
	block.Store(value, slot)
	return block
}

// value lowers id for its value: Numeric and Binary expressions produce
// a value directly, everything else is lowered to a pointer and loaded.
func (l *lowerer) value(block *irbuilder.BasicBlock, id ast.ExprID) ir.Value {
	if l.failed {
		return nil
	}
	node, ok := l.gen.exprs.Get(ast.ID(id))
	if !ok {
		return l.fail(diag.CodegenUnsupportedLowering, source.Span{}, "expression could not be resolved")
	}

	switch n := node.(type) {
	case ast.Numeric:
		return l.numeric(n)

	case ast.Binary:
		return l.binary(block, n)

	default:
		ptr := l.pointer(block, id)
		if l.failed {
			return nil
		}
		ty, ok := l.exprType(id)
		if !ok {
			return l.fail(diag.CodegenUnsupportedType, node.Span(), "expression has no inferred type")
		}
		llvmTy, ok := toLLVM(ty)
		if !ok {
			return l.fail(diag.CodegenUnsupportedType, node.Span(),
				fmt.Sprintf("type %s cannot be lowered to LLVM", ty.String()))
		}
		return block.Load(llvmTy, ptr)
	}
}

// numeric lowers a literal per the same dot-means-float rule inference
// uses: no decimal point is a 64-bit integer, a decimal point is a
// double.
func (l *lowerer) numeric(n ast.Numeric) ir.Value {
	if strings.Contains(n.Literal, ".") {
		v, ok := ir.NewFloatValue(n.Literal, ir.Double{})
		if !ok {
			return l.fail(diag.CodegenBadBinaryOperand, n.Span(), fmt.Sprintf("%q is not a valid floating-point literal", n.Literal))
		}
		return v
	}
	v, ok := ir.NewIntegerValue(n.Literal, 64)
	if !ok {
		return l.fail(diag.CodegenBadBinaryOperand, n.Span(), fmt.Sprintf("%q is not a valid integer literal", n.Literal))
	}
	return v
}

// binary dispatches on the left operand's inferred type to the integer
// or floating-point instruction family; any other type is a generator
// error, since Lotl has no other arithmetic types.
func (l *lowerer) binary(block *irbuilder.BasicBlock, n ast.Binary) ir.Value {
	lhs := l.value(block, n.Lhs)
	if l.failed {
		return nil
	}
	rhs := l.value(block, n.Rhs)
	if l.failed {
		return nil
	}
	lt, ok := l.exprType(n.Lhs)
	if !ok {
		return l.fail(diag.CodegenUnsupportedType, n.OpSpan, "left operand of binary expression has no inferred type")
	}

	if lt.IsFloat() {
		switch n.Op {
		case ast.OpAdd:
			return block.FAdd(lhs, rhs)
		case ast.OpSub:
			return block.FSub(lhs, rhs)
		case ast.OpMul:
			return block.FMul(lhs, rhs)
		case ast.OpDiv:
			return block.FDiv(lhs, rhs)
		}
	}
	if lt.Kind == ast.Int32 || lt.Kind == ast.Int64 {
		switch n.Op {
		case ast.OpAdd:
			return block.Add(lhs, rhs)
		case ast.OpSub:
			return block.Sub(lhs, rhs)
		case ast.OpMul:
			return block.Mul(lhs, rhs)
		case ast.OpDiv:
			return block.SDiv(lhs, rhs)
		}
	}
	return l.fail(diag.CodegenBadBinaryOperand, n.OpSpan,
		fmt.Sprintf("binary operator %s is not supported for operand type %s", n.Op.String(), lt.String()))
}

// pointer lowers id to an address: only a plain Identifier naming an
// already-allocated storage slot is supported. Anything else in pointer
// position — a field access, a subscript, an invocation result — is
// rejected, per the generator's current object model.
func (l *lowerer) pointer(block *irbuilder.BasicBlock, id ast.ExprID) ir.Value {
	node, ok := l.gen.exprs.Get(ast.ID(id))
	if !ok {
		return l.fail(diag.CodegenUnsupportedLowering, source.Span{}, "expression could not be resolved")
	}
	ident, ok := node.(ast.Identifier)
	if !ok {
		return l.fail(diag.CodegenUnsupportedLowering, node.Span(),
			fmt.Sprintf("%s cannot be lowered to a pointer", describeExprKind(node.ExprKind())))
	}
	slot, ok := l.slots[ident.Name]
	if !ok {
		return l.fail(diag.CodegenUnsupportedLowering, ident.Span(),
			fmt.Sprintf("identifier %q has no storage slot in this function", ident.Name))
	}
	return slot
}

func describeExprKind(k ast.ExprKind) string {
	switch k {
	case ast.ExprFieldAccess:
		return "a field access"
	case ast.ExprNamespaceAccess:
		return "a namespace access"
	case ast.ExprSubscript:
		return "a subscript"
	case ast.ExprInvocation:
		return "an invocation"
	case ast.ExprBlock:
		return "a block"
	case ast.ExprIf:
		return "an if expression"
	case ast.ExprFor:
		return "a for loop"
	case ast.ExprWhile:
		return "a while loop"
	default:
		return "this expression"
	}
}
