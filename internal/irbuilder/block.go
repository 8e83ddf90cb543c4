// Package irbuilder is the stateful counterpart to internal/ir: it owns a
// tree of basic blocks rooted at an entry block, allocates SSA registers
// and block labels from shared atomic counters, and assembles functions
// and modules into their final textual form.
package irbuilder

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"lotl/internal/ir"
)

// BasicBlock is one node in a function's block tree: a label, an ordered
// instruction list, and an ordered list of child blocks. The register and
// block-label counters are shared references cloned into every
// descendant, so nested-scope lowering never collides on SSA names no
// matter what order blocks are populated in.
type BasicBlock struct {
	Label        string
	Instructions []string
	Children     []*BasicBlock

	regs   *atomic.Int64
	blocks *atomic.Int64
}

// NewEntryBlock starts a fresh block tree; its label is always "entry".
func NewEntryBlock() *BasicBlock {
	return &BasicBlock{
		Label:  "entry",
		regs:   new(atomic.Int64),
		blocks: new(atomic.Int64),
	}
}

func (b *BasicBlock) newChild() *BasicBlock {
	n := b.blocks.Add(1) - 1
	child := &BasicBlock{
		Label:  fmt.Sprintf("bb%d", n),
		regs:   b.regs,
		blocks: b.blocks,
	}
	b.Children = append(b.Children, child)
	return child
}

func (b *BasicBlock) appendf(format string, args ...any) {
	b.Instructions = append(b.Instructions, fmt.Sprintf(format, args...))
}

// createLocalRegister atomically increments the shared counter and
// returns both the bare name and the LocalIdentifier value referencing
// it, per the builder's register-allocation contract.
func (b *BasicBlock) createLocalRegister(t ir.Type) (string, ir.LocalIdentifier) {
	n := b.regs.Add(1) - 1
	name := "r" + strconv.FormatInt(n, 10)
	return name, ir.LocalIdentifier{Name: name, Typ: t}
}

// ---- Integer and float arithmetic ----

func (b *BasicBlock) binaryOp(op string, lhs, rhs ir.Value) ir.Value {
	name, reg := b.createLocalRegister(lhs.Type())
	b.appendf("%%%s = %s %s, %s", name, op, ir.Typed(lhs), ir.Untyped(rhs))
	return reg
}

func (b *BasicBlock) Add(lhs, rhs ir.Value) ir.Value  { return b.binaryOp("add", lhs, rhs) }
func (b *BasicBlock) Sub(lhs, rhs ir.Value) ir.Value  { return b.binaryOp("sub", lhs, rhs) }
func (b *BasicBlock) Mul(lhs, rhs ir.Value) ir.Value  { return b.binaryOp("mul", lhs, rhs) }
func (b *BasicBlock) SDiv(lhs, rhs ir.Value) ir.Value { return b.binaryOp("sdiv", lhs, rhs) }
func (b *BasicBlock) UDiv(lhs, rhs ir.Value) ir.Value { return b.binaryOp("udiv", lhs, rhs) }
func (b *BasicBlock) FAdd(lhs, rhs ir.Value) ir.Value { return b.binaryOp("fadd", lhs, rhs) }
func (b *BasicBlock) FSub(lhs, rhs ir.Value) ir.Value { return b.binaryOp("fsub", lhs, rhs) }
func (b *BasicBlock) FMul(lhs, rhs ir.Value) ir.Value { return b.binaryOp("fmul", lhs, rhs) }
func (b *BasicBlock) FDiv(lhs, rhs ir.Value) ir.Value { return b.binaryOp("fdiv", lhs, rhs) }

// FNeg is the lone unary float instruction; its result keeps the
// operand's type.
func (b *BasicBlock) FNeg(v ir.Value) ir.Value {
	name, reg := b.createLocalRegister(v.Type())
	b.appendf("%%%s = fneg %s", name, ir.Typed(v))
	return reg
}

// Trunc narrows v to target, e.g. truncating a wide integer condition
// down to i1 ahead of a conditional branch.
func (b *BasicBlock) Trunc(v ir.Value, target ir.Type) ir.Value {
	name, reg := b.createLocalRegister(target)
	b.appendf("%%%s = trunc %s to %s", name, ir.Typed(v), target.String())
	return reg
}

// ---- Memory ----

func (b *BasicBlock) Alloca(t ir.Type) ir.Value {
	name, reg := b.createLocalRegister(ir.Ptr{})
	b.appendf("%%%s = alloca %s", name, t.String())
	return reg
}

func (b *BasicBlock) Load(t ir.Type, ptr ir.Value) ir.Value {
	name, reg := b.createLocalRegister(t)
	b.appendf("%%%s = load %s, %s", name, t.String(), ir.Typed(ptr))
	return reg
}

func (b *BasicBlock) Store(value, ptr ir.Value) {
	b.appendf("store %s, %s", ir.Typed(value), ir.Typed(ptr))
}

// ---- Aggregates ----

// aggregateElementType resolves the element type at index i within a
// Structure or Array container, panicking per the builder's contract if
// the container is neither. The Array branch intentionally checks
// `i > length` rather than `i >= length`: a known off-by-one preserved
// for bug-compatibility (see the design notes on array bounds).
func aggregateElementType(t ir.Type, i int) ir.Type {
	switch tt := t.(type) {
	case ir.Structure:
		return tt.Fields[i]
	case ir.Array:
		if i > tt.Length {
			panic(fmt.Sprintf("extractvalue/insertvalue index %d out of bounds for array of length %d", i, tt.Length))
		}
		return tt.Element
	default:
		panic("extractvalue/insertvalue requires a Structure or Array container")
	}
}

func (b *BasicBlock) ExtractValue(agg ir.Value, i int) ir.Value {
	elem := aggregateElementType(agg.Type(), i)
	name, reg := b.createLocalRegister(elem)
	b.appendf("%%%s = extractvalue %s, %d", name, ir.Typed(agg), i)
	return reg
}

func (b *BasicBlock) InsertValue(agg, v ir.Value, i int) ir.Value {
	elem := aggregateElementType(agg.Type(), i)
	if !elem.Equal(v.Type()) {
		panic(fmt.Sprintf("insertvalue: expected %s, got %s", elem.String(), v.Type().String()))
	}
	name, reg := b.createLocalRegister(agg.Type())
	b.appendf("%%%s = insertvalue %s, %s, %d", name, ir.Typed(agg), ir.Typed(v), i)
	return reg
}

// GetElementPtr walks t with the given index sequence: structure indices
// must be integer-literal Values, array indices simply descend into the
// element type.
func (b *BasicBlock) GetElementPtr(t ir.Type, base ir.Value, indices []ir.Value) ir.Value {
	cur := t
	for _, idx := range indices {
		switch tt := cur.(type) {
		case ir.Structure:
			n, ok := idx.(ir.Number)
			if !ok {
				panic("getelementptr: structure index must be an integer literal")
			}
			i, err := strconv.Atoi(n.Literal)
			if err != nil {
				panic("getelementptr: structure index must be an integer literal")
			}
			cur = tt.Fields[i]
		case ir.Array:
			cur = tt.Element
		default:
			panic("getelementptr: cannot index into " + cur.String())
		}
	}
	name, reg := b.createLocalRegister(ir.Ptr{})
	parts := make([]string, 0, len(indices))
	for _, idx := range indices {
		parts = append(parts, ir.Typed(idx))
	}
	b.appendf("%%%s = getelementptr %s, %s, %s", name, t.String(), ir.Typed(base), strings.Join(parts, ", "))
	return reg
}

// ---- Control flow ----

func (b *BasicBlock) RetVoid()       { b.appendf("ret void") }
func (b *BasicBlock) Ret(v ir.Value) { b.appendf("ret %s", ir.Typed(v)) }
func (b *BasicBlock) Unreachable()   { b.appendf("unreachable") }

// Goto records an unconditional branch into an already-created block,
// typically a continuation produced by Continuation.
func (b *BasicBlock) Goto(to *BasicBlock) { b.appendf("br label %%%s", to.Label) }

// Br is the closure-style unconditional branch: it allocates a child
// block, records the branch, then runs body to populate the child.
func (b *BasicBlock) Br(body func(*BasicBlock)) *BasicBlock {
	child := b.newChild()
	b.appendf("br label %%%s", child.Label)
	body(child)
	return child
}

// BrIf is the closure-style conditional branch.
func (b *BasicBlock) BrIf(cond ir.Value, then, otherwise func(*BasicBlock)) (*BasicBlock, *BasicBlock) {
	t, f := b.BrIfReturning(cond)
	then(t)
	otherwise(f)
	return t, f
}

// BrIfReturning is the handle-style conditional branch: it records the
// branch and hands back both empty child blocks without populating them,
// letting the caller fill them in arbitrary order and Goto them into a
// shared continuation afterwards. This is what if-expression lowering
// needs, since both arms must join a continuation block created only
// after both have been lowered.
func (b *BasicBlock) BrIfReturning(cond ir.Value) (*BasicBlock, *BasicBlock) {
	t := b.newChild()
	f := b.newChild()
	b.appendf("br %s, label %%%s, label %%%s", ir.Typed(cond), t.Label, f.Label)
	return t, f
}

// Continuation allocates a fresh child of b with no branch recorded yet;
// callers Goto into it from wherever control should join.
func (b *BasicBlock) Continuation() *BasicBlock {
	return b.newChild()
}

func (b *BasicBlock) content() string {
	var sb strings.Builder
	sb.WriteString(b.Label)
	sb.WriteString(":")
	sb.WriteString(" ")
	sb.WriteString(strings.Join(b.Instructions, " "))
	sb.WriteString(" ")
	childContents := make([]string, 0, len(b.Children))
	for _, c := range b.Children {
		childContents = append(childContents, c.content())
	}
	sb.WriteString(strings.Join(childContents, " "))
	return sb.String()
}

// Walk visits b and every descendant, parent before children, in the
// same pre-order the textual emission uses.
func (b *BasicBlock) Walk(visit func(*BasicBlock)) {
	visit(b)
	for _, c := range b.Children {
		c.Walk(visit)
	}
}
