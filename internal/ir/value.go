package ir

import (
	"regexp"
	"strings"
)

// Value is the closed sum of LLVM values Lotl emits. Every value carries
// its own type; AppendTyped prepends it (`i32 10`), AppendUntyped omits
// it (used as a binary op's right operand and as branch operands, where
// the type is implicit from context).
type Value interface {
	Type() Type
	AppendTyped(buf *strings.Builder)
	AppendUntyped(buf *strings.Builder)
}

func typed(v Value) string {
	var sb strings.Builder
	v.AppendTyped(&sb)
	return sb.String()
}

func untyped(v Value) string {
	var sb strings.Builder
	v.AppendUntyped(&sb)
	return sb.String()
}

// Number is an integer or floating-point literal paired with its type.
type Number struct {
	Literal string
	Typ     Type
}

var integerLiteral = regexp.MustCompile(`^-?[0-9]+$`)
var floatLiteral = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// NewIntegerValue builds a Number iff lit matches `-?[0-9]+` and width is within
// Integer's bound (invariant 7 of the textual surface).
func NewIntegerValue(lit string, width int) (Number, bool) {
	if !integerLiteral.MatchString(lit) {
		return Number{}, false
	}
	ty, ok := NewInteger(width)
	if !ok {
		return Number{}, false
	}
	return Number{Literal: lit, Typ: ty}, true
}

// NewFloatValue builds a Number iff lit matches `-?[0-9]+(\.[0-9]+)?`
// against the given floating type.
func NewFloatValue(lit string, ty Type) (Number, bool) {
	if !floatLiteral.MatchString(lit) {
		return Number{}, false
	}
	return Number{Literal: lit, Typ: ty}, true
}

func (v Number) Type() Type { return v.Typ }

func (v Number) AppendTyped(buf *strings.Builder) {
	v.Typ.AppendString(buf)
	buf.WriteByte(' ')
	buf.WriteString(v.Literal)
}

func (v Number) AppendUntyped(buf *strings.Builder) { buf.WriteString(v.Literal) }

// ZeroInitializer is LLVM's `zeroinitializer` aggregate constant.
type ZeroInitializer struct {
	Typ Type
}

func (v ZeroInitializer) Type() Type { return v.Typ }

func (v ZeroInitializer) AppendTyped(buf *strings.Builder) {
	v.Typ.AppendString(buf)
	buf.WriteByte(' ')
	buf.WriteString("zeroinitializer")
}

func (v ZeroInitializer) AppendUntyped(buf *strings.Builder) { buf.WriteString("zeroinitializer") }

// AggregateValue is a structure or array constant built from elements.
type AggregateValue struct {
	Elements []Value
	Typ      Type
}

func (v AggregateValue) Type() Type { return v.Typ }

func (v AggregateValue) AppendTyped(buf *strings.Builder) {
	v.Typ.AppendString(buf)
	buf.WriteByte(' ')
	v.appendBody(buf)
}

func (v AggregateValue) AppendUntyped(buf *strings.Builder) { v.appendBody(buf) }

func (v AggregateValue) appendBody(buf *strings.Builder) {
	buf.WriteByte('{')
	for i, e := range v.Elements {
		if i > 0 {
			buf.WriteString(", ")
		}
		e.AppendTyped(buf)
	}
	buf.WriteByte('}')
}

// GlobalIdentifier is `@name`.
type GlobalIdentifier struct {
	Name string
	Typ  Type
}

func (v GlobalIdentifier) Type() Type { return v.Typ }

func (v GlobalIdentifier) AppendTyped(buf *strings.Builder) {
	v.Typ.AppendString(buf)
	buf.WriteByte(' ')
	v.AppendUntyped(buf)
}

func (v GlobalIdentifier) AppendUntyped(buf *strings.Builder) {
	buf.WriteByte('@')
	buf.WriteString(v.Name)
}

// LocalIdentifier is `%name`, the result of an SSA register allocation
// or a function parameter.
type LocalIdentifier struct {
	Name string
	Typ  Type
}

func (v LocalIdentifier) Type() Type { return v.Typ }

func (v LocalIdentifier) AppendTyped(buf *strings.Builder) {
	v.Typ.AppendString(buf)
	buf.WriteByte(' ')
	v.AppendUntyped(buf)
}

func (v LocalIdentifier) AppendUntyped(buf *strings.Builder) {
	buf.WriteByte('%')
	buf.WriteString(v.Name)
}

// Typed renders v's fully-qualified form (`i32 10`).
func Typed(v Value) string { return typed(v) }

// Untyped renders v with its type prefix omitted (`10`).
func Untyped(v Value) string { return untyped(v) }
