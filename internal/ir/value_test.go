package ir_test

import (
	"testing"

	"lotl/internal/ir"
)

func TestNumberRendering(t *testing.T) {
	n, ok := ir.NewIntegerValue("10", 32)
	if !ok {
		t.Fatal("expected \"10\" to be accepted as an i32 literal")
	}
	if got := ir.Typed(n); got != "i32 10" {
		t.Errorf("Typed() = %q, want %q", got, "i32 10")
	}
	if got := ir.Untyped(n); got != "10" {
		t.Errorf("Untyped() = %q, want %q", got, "10")
	}
}

// Invariant 7: Values::integer(lit, w) accepts lit iff it matches
// `-?[0-9]+`, and rejects widths above 8_388_607.
func TestNewIntegerValueValidatesLiteralAndWidth(t *testing.T) {
	cases := []struct {
		lit   string
		width int
		ok    bool
	}{
		{"10", 32, true},
		{"-10", 32, true},
		{"10.5", 32, false},
		{"abc", 32, false},
		{"", 32, false},
		{"10", 8_388_608, false},
	}
	for _, c := range cases {
		_, ok := ir.NewIntegerValue(c.lit, c.width)
		if ok != c.ok {
			t.Errorf("NewIntegerValue(%q, %d) ok = %v, want %v", c.lit, c.width, ok, c.ok)
		}
	}
}

func TestFloatValueRendering(t *testing.T) {
	f, ok := ir.NewFloatValue("20.5", ir.Double{})
	if !ok {
		t.Fatal("expected \"20.5\" to be accepted as a double literal")
	}
	if got := ir.Typed(f); got != "double 20.5" {
		t.Errorf("Typed() = %q, want %q", got, "double 20.5")
	}
}

func TestZeroInitializerRendering(t *testing.T) {
	z := ir.ZeroInitializer{Typ: ir.Structure{Fields: []ir.Type{ir.Integer{Width: 32}}}}
	if got := ir.Typed(z); got != "{i32} zeroinitializer" {
		t.Errorf("Typed() = %q, want %q", got, "{i32} zeroinitializer")
	}
}

func TestIdentifierRendering(t *testing.T) {
	g := ir.GlobalIdentifier{Name: "start", Typ: ir.Function{Return: ir.Integer{Width: 64}}}
	if got := ir.Untyped(g); got != "@start" {
		t.Errorf("Untyped() = %q, want %q", got, "@start")
	}
	l := ir.LocalIdentifier{Name: "r3", Typ: ir.Ptr{}}
	if got := ir.Typed(l); got != "ptr %r3" {
		t.Errorf("Typed() = %q, want %q", got, "ptr %r3")
	}
	if got := ir.Untyped(l); got != "%r3" {
		t.Errorf("Untyped() = %q, want %q", got, "%r3")
	}
}

func TestAggregateValueRendering(t *testing.T) {
	one, _ := ir.NewIntegerValue("1", 32)
	two, _ := ir.NewIntegerValue("2", 32)
	agg := ir.AggregateValue{
		Elements: []ir.Value{one, two},
		Typ:      ir.Structure{Fields: []ir.Type{ir.Integer{Width: 32}, ir.Integer{Width: 32}}},
	}
	if got := ir.Untyped(agg); got != "{i32 1, i32 2}" {
		t.Errorf("Untyped() = %q, want %q", got, "{i32 1, i32 2}")
	}
}
