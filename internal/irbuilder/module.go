package irbuilder

import (
	"fmt"
	"strings"

	"lotl/internal/ir"
)

// Linkage selects a global's LLVM linkage token. External is the zero
// value and renders as the empty string (LLVM's default).
type Linkage uint8

const (
	External Linkage = iota
	Private
	Internal
	AvailableExternally
)

func (l Linkage) String() string {
	switch l {
	case Private:
		return "private"
	case Internal:
		return "internal"
	case AvailableExternally:
		return "available_externally"
	default:
		return ""
	}
}

// Global is a module-level variable declaration.
type Global struct {
	Name    string
	Typ     ir.Type
	Value   ir.Value
	Linkage Linkage
}

// Emit renders `@{name} = [{linkage} ]global {type} {value}`; the
// linkage token is omitted for External.
func (g Global) Emit() string {
	linkage := ""
	if tok := g.Linkage.String(); tok != "" {
		linkage = tok + " "
	}
	return fmt.Sprintf("@%s = %sglobal %s %s", g.Name, linkage, g.Typ.String(), ir.Untyped(g.Value))
}

// Module owns every function and global a codegen run produced; nested
// basic blocks are owned by their parent function.
type Module struct {
	Functions []*Function
	Globals   []Global
}

// NewModule returns an empty module ready to accept functions and globals.
func NewModule() *Module {
	return &Module{}
}

// AddFunction appends f to the module and returns it, for chaining.
func (m *Module) AddFunction(f *Function) *Function {
	m.Functions = append(m.Functions, f)
	return f
}

// AddGlobal appends g to the module.
func (m *Module) AddGlobal(g Global) {
	m.Globals = append(m.Globals, g)
}

// Emit renders the module as its globals followed by its functions,
// separated by blank lines.
func (m *Module) Emit() string {
	parts := make([]string, 0, len(m.Functions)+len(m.Globals))
	for _, g := range m.Globals {
		parts = append(parts, g.Emit())
	}
	for _, f := range m.Functions {
		parts = append(parts, f.Emit())
	}
	return strings.Join(parts, "\n\n")
}
