// Package ir models the textual LLVM IR Lotl's codegen stage targets: a
// small algebraic Type/Value surface, each node knowing how to append its
// own rendering to a buffer, together with a builder (see irbuilder) that
// assembles these nodes into basic blocks, functions, and modules.
package ir

import (
	"strconv"
	"strings"
)

// Type is the closed sum of LLVM types Lotl emits. Every variant knows
// how to render its own textual form; there is no separate formatter.
type Type interface {
	AppendString(buf *strings.Builder)
	String() string
	Equal(other Type) bool
}

// maxIntegerWidth bounds Integer per the textual surface's own limit —
// LLVM itself caps integer types at 2^23-1 bits.
const maxIntegerWidth = 8_388_607

// Integer is `i{width}`.
type Integer struct {
	Width int
}

func (t Integer) AppendString(buf *strings.Builder) {
	buf.WriteByte('i')
	buf.WriteString(strconv.Itoa(t.Width))
}

func (t Integer) String() string {
	var sb strings.Builder
	t.AppendString(&sb)
	return sb.String()
}

func (t Integer) Equal(other Type) bool {
	o, ok := other.(Integer)
	return ok && o.Width == t.Width
}

// Array is `[ {n} x {elem} ]`.
type Array struct {
	Length  int
	Element Type
}

func (t Array) AppendString(buf *strings.Builder) {
	buf.WriteString("[ ")
	buf.WriteString(strconv.Itoa(t.Length))
	buf.WriteString(" x ")
	t.Element.AppendString(buf)
	buf.WriteString(" ]")
}

func (t Array) String() string {
	var sb strings.Builder
	t.AppendString(&sb)
	return sb.String()
}

func (t Array) Equal(other Type) bool {
	o, ok := other.(Array)
	return ok && o.Length == t.Length && o.Element.Equal(t.Element)
}

// Structure is `{elem0, elem1, …}`.
type Structure struct {
	Fields []Type
}

func (t Structure) AppendString(buf *strings.Builder) {
	buf.WriteByte('{')
	for i, f := range t.Fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		f.AppendString(buf)
	}
	buf.WriteByte('}')
}

func (t Structure) String() string {
	var sb strings.Builder
	t.AppendString(&sb)
	return sb.String()
}

func (t Structure) Equal(other Type) bool {
	o, ok := other.(Structure)
	if !ok || len(o.Fields) != len(t.Fields) {
		return false
	}
	for i := range t.Fields {
		if !t.Fields[i].Equal(o.Fields[i]) {
			return false
		}
	}
	return true
}

// Ptr is the single opaque `ptr` type LLVM uses post-typed-pointers.
type Ptr struct{}

func (t Ptr) AppendString(buf *strings.Builder) { buf.WriteString("ptr") }
func (t Ptr) String() string                    { return "ptr" }
func (t Ptr) Equal(other Type) bool             { _, ok := other.(Ptr); return ok }

// Void is `void`.
type Void struct{}

func (t Void) AppendString(buf *strings.Builder) { buf.WriteString("void") }
func (t Void) String() string                    { return "void" }
func (t Void) Equal(other Type) bool             { _, ok := other.(Void); return ok }

// Function is `{return} ({params})`; it only ever appears as the type of
// a callee operand, never emitted standalone by this revision's codegen.
type Function struct {
	Return Type
	Params []Type
}

func (t Function) AppendString(buf *strings.Builder) {
	t.Return.AppendString(buf)
	buf.WriteString(" (")
	for i, p := range t.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		p.AppendString(buf)
	}
	buf.WriteByte(')')
}

func (t Function) String() string {
	var sb strings.Builder
	t.AppendString(&sb)
	return sb.String()
}

func (t Function) Equal(other Type) bool {
	o, ok := other.(Function)
	if !ok || len(o.Params) != len(t.Params) || !o.Return.Equal(t.Return) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

// Half, Float, Double, FP128 are the IEEE float widths LLVM names.
type (
	Half   struct{}
	Float  struct{}
	Double struct{}
	FP128  struct{}
)

func (t Half) AppendString(buf *strings.Builder)   { buf.WriteString("half") }
func (t Half) String() string                      { return "half" }
func (t Half) Equal(other Type) bool               { _, ok := other.(Half); return ok }
func (t Float) AppendString(buf *strings.Builder)  { buf.WriteString("float") }
func (t Float) String() string                     { return "float" }
func (t Float) Equal(other Type) bool              { _, ok := other.(Float); return ok }
func (t Double) AppendString(buf *strings.Builder) { buf.WriteString("double") }
func (t Double) String() string                    { return "double" }
func (t Double) Equal(other Type) bool             { _, ok := other.(Double); return ok }
func (t FP128) AppendString(buf *strings.Builder)  { buf.WriteString("fp128") }
func (t FP128) String() string                     { return "fp128" }
func (t FP128) Equal(other Type) bool              { _, ok := other.(FP128); return ok }

// NewInteger validates width against the textual surface's limit before
// handing back an Integer type. NewIntegerValue goes through it; codegen
// builds its fixed-width Integer types as literals and does not call it.
func NewInteger(width int) (Integer, bool) {
	if width < 1 || width > maxIntegerWidth {
		return Integer{}, false
	}
	return Integer{Width: width}, true
}

