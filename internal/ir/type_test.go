package ir_test

import (
	"testing"

	"lotl/internal/ir"
)

func TestTypeRendering(t *testing.T) {
	cases := []struct {
		name string
		typ  ir.Type
		want string
	}{
		{"integer", ir.Integer{Width: 32}, "i32"},
		{"array", ir.Array{Length: 4, Element: ir.Integer{Width: 8}}, "[ 4 x i8 ]"},
		{"structure", ir.Structure{Fields: []ir.Type{ir.Integer{Width: 32}, ir.Ptr{}}}, "{i32, ptr}"},
		{"ptr", ir.Ptr{}, "ptr"},
		{"void", ir.Void{}, "void"},
		{"half", ir.Half{}, "half"},
		{"float", ir.Float{}, "float"},
		{"double", ir.Double{}, "double"},
		{"fp128", ir.FP128{}, "fp128"},
		{"function", ir.Function{Return: ir.Integer{Width: 64}, Params: []ir.Type{ir.Ptr{}}}, "i64 (ptr)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.typ.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestIntegerWidthBounds(t *testing.T) {
	if _, ok := ir.NewInteger(0); ok {
		t.Error("expected width 0 to be rejected")
	}
	if _, ok := ir.NewInteger(8_388_607); !ok {
		t.Error("expected the maximum width to be accepted")
	}
	if _, ok := ir.NewInteger(8_388_608); ok {
		t.Error("expected width above the maximum to be rejected")
	}
}

func TestTypeEqual(t *testing.T) {
	a := ir.Array{Length: 2, Element: ir.Integer{Width: 32}}
	b := ir.Array{Length: 2, Element: ir.Integer{Width: 32}}
	c := ir.Array{Length: 3, Element: ir.Integer{Width: 32}}
	if !a.Equal(b) {
		t.Error("expected equal arrays to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected arrays of different length to compare unequal")
	}
	if (ir.Integer{Width: 32}).Equal(ir.Integer{Width: 64}) {
		t.Error("expected integers of different width to compare unequal")
	}
}
