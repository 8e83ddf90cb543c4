package irbuilder

import (
	"fmt"
	"strings"

	"lotl/internal/ir"
)

// Param is a function parameter: a name (used as its local identifier
// inside the body) and its LLVM type.
type Param struct {
	Name string
	Typ  ir.Type
}

// Value returns the LocalIdentifier a function body uses to reference
// this parameter.
func (p Param) Value() ir.LocalIdentifier {
	return ir.LocalIdentifier{Name: p.Name, Typ: p.Typ}
}

// Function owns an entry block and emits itself as a `define` line
// followed by a depth-first pre-order traversal of its block tree.
type Function struct {
	Name   string
	Return ir.Type
	Params []Param
	Entry  *BasicBlock
}

// NewFunction allocates a function with a fresh entry block ready to
// receive instructions.
func NewFunction(name string, ret ir.Type, params []Param) *Function {
	return &Function{Name: name, Return: ret, Params: params, Entry: NewEntryBlock()}
}

// Emit renders the function per the textual surface's
// `define {ret} @{name}({ptypes}) { {entry}:{SP}{insts}{SP}{children} }`
// contract. For an empty body this yields exactly
// `define i32 @f() { entry:  }`.
func (f *Function) Emit() string {
	ptypes := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		ptypes = append(ptypes, fmt.Sprintf("%s %%%s", p.Typ.String(), p.Name))
	}
	return fmt.Sprintf("define %s @%s(%s) { %s}", f.Return.String(), f.Name, strings.Join(ptypes, ", "), f.Entry.content())
}

// registerNames collects every `%rN` register name assigned anywhere in
// the function's block tree, in tree order.
func (f *Function) registerNames() []string {
	var names []string
	f.Entry.Walk(func(b *BasicBlock) {
		for _, inst := range b.Instructions {
			if idx := strings.Index(inst, " = "); idx > 0 && strings.HasPrefix(inst, "%") {
				names = append(names, inst[1:idx])
			}
		}
	})
	return names
}

// blockLabels collects every block label in the function's tree.
func (f *Function) blockLabels() map[string]bool {
	labels := make(map[string]bool)
	f.Entry.Walk(func(b *BasicBlock) { labels[b.Label] = true })
	return labels
}

// CheckWellFormed verifies invariant 6: every register name is unique
// within the function, and every branch target names a label defined
// somewhere in the function's block tree.
func (f *Function) CheckWellFormed() error {
	seen := make(map[string]bool)
	for _, name := range f.registerNames() {
		if seen[name] {
			return fmt.Errorf("duplicate register name %%%s in function %s", name, f.Name)
		}
		seen[name] = true
	}
	labels := f.blockLabels()
	var err error
	f.Entry.Walk(func(b *BasicBlock) {
		if err != nil {
			return
		}
		for _, inst := range b.Instructions {
			for _, target := range branchTargets(inst) {
				if !labels[target] {
					err = fmt.Errorf("branch to undefined label %%%s in function %s", target, f.Name)
					return
				}
			}
		}
	})
	return err
}

// branchTargets extracts every `label %name` operand from an
// instruction string.
func branchTargets(inst string) []string {
	var targets []string
	rest := inst
	for {
		idx := strings.Index(rest, "label %")
		if idx < 0 {
			break
		}
		rest = rest[idx+len("label %"):]
		end := 0
		for end < len(rest) && rest[end] != ',' && rest[end] != ' ' {
			end++
		}
		targets = append(targets, rest[:end])
		rest = rest[end:]
	}
	return targets
}
