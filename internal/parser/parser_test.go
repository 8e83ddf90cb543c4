package parser_test

import (
	"testing"

	"lotl/internal/ast"
	"lotl/internal/diag"
	"lotl/internal/lexer"
	"lotl/internal/parser"
	"lotl/internal/source"
)

func parseString(t *testing.T, content string) (*parser.Module, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte(content))
	lexed := lexer.Lex(fs.Get(id))
	if len(lexed.Diagnostics) != 0 {
		t.Fatalf("unexpected lexer diagnostics: %v", lexed.Diagnostics)
	}
	parsed := parser.Parse(lexed.Value)
	return parsed.Value, parsed.Diagnostics
}

// S3: "func main() -> i32 { }" parses to one Function definition with
// name "main", no generics, no parameters, Int32 return, an empty body,
// and zero diagnostics.
func TestScenarioSimpleFunctionParse(t *testing.T) {
	mod, diags := parseString(t, "func main() -> i32 { }")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if len(mod.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(mod.Definitions))
	}
	def := mod.Definitions[0]
	if def.Kind != ast.DefFunction || def.Name != "main" {
		t.Fatalf("expected Function \"main\", got kind=%v name=%q", def.Kind, def.Name)
	}
	fn := def.Function
	if len(fn.Generics) != 0 {
		t.Errorf("expected no generics, got %v", fn.Generics)
	}
	if len(fn.Parameters) != 0 {
		t.Errorf("expected no parameters, got %v", fn.Parameters)
	}
	if fn.Returns.Kind != ast.Int32 {
		t.Errorf("expected Int32 return type, got %v", fn.Returns)
	}
	if !fn.HasBody {
		t.Fatal("expected a body to be present")
	}
	if len(fn.Statements) != 0 {
		t.Errorf("expected an empty body, got %v", fn.Statements)
	}
}

// S4: "func main() -> { }" is missing its return type identifier; the
// parser reports exactly one diagnostic and substitutes Void.
func TestScenarioMissingReturnType(t *testing.T) {
	mod, diags := parseString(t, "func main() -> { }")
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %v", diags)
	}
	if diags[0].Code != diag.SynExpectedKind {
		t.Errorf("expected SynExpectedKind, got %v", diags[0].Code)
	}
	if len(mod.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(mod.Definitions))
	}
	fn := mod.Definitions[0].Function
	if fn.Returns.Kind != ast.Void {
		t.Errorf("expected Void return type substituted, got %v", fn.Returns)
	}
}

func TestDuplicateDefinitionIsDiagnosed(t *testing.T) {
	_, diags := parseString(t, "func main() -> i32 { } func main() -> i32 { }")
	found := false
	for _, d := range diags {
		if d.Code == diag.SynDuplicateDefinition {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SynDuplicateDefinition diagnostic, got %v", diags)
	}
}

func TestNamespaceNestsFurtherHeaders(t *testing.T) {
	mod, diags := parseString(t, "namespace outer { func inner() -> void { } }")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if len(mod.Definitions) != 1 || mod.Definitions[0].Kind != ast.DefNamespace {
		t.Fatalf("expected a single Namespace definition, got %+v", mod.Definitions)
	}
	ns := mod.Definitions[0].Namespace
	if len(ns.Members) != 1 || ns.Members[0].Name != "inner" {
		t.Fatalf("expected namespace to contain function \"inner\", got %+v", ns.Members)
	}
}

// Invariant 4: every ExprId reachable from the parsed AST resolves to
// exactly one node in the expression arena, and that node's own ID
// matches the lookup key.
func TestInvariantArenaConsistency(t *testing.T) {
	mod, diags := parseString(t, "func start() -> i64 { return 10 + 20; }")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	fn := mod.Definitions[0].Function
	if len(fn.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Statements))
	}
	var walk func(id ast.ExprID)
	walk = func(id ast.ExprID) {
		node, ok := mod.Exprs.Get(ast.ID(id))
		if !ok {
			t.Fatalf("ExprID %v not found in arena", id)
		}
		if node.NodeID() != ast.ID(id) {
			t.Fatalf("arena node ID %v does not match lookup key %v", node.NodeID(), id)
		}
		switch n := node.(type) {
		case ast.Returns:
			walk(n.Expr)
		case ast.Binary:
			walk(n.Lhs)
			walk(n.Rhs)
		}
	}
	walk(fn.Statements[0])
}

func TestArithmeticPrecedenceAndAssociativity(t *testing.T) {
	mod, diags := parseString(t, "func f() -> i64 { 1 + 2 * 3 - 4; }")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	fn := mod.Definitions[0].Function
	root, ok := mod.Exprs.Get(ast.ID(fn.Statements[0]))
	if !ok {
		t.Fatal("expected root expression to be registered")
	}
	top, ok := root.(ast.Binary)
	if !ok {
		t.Fatalf("expected top-level node to be Binary (the trailing '- 4'), got %T", root)
	}
	if top.Op != ast.OpSub {
		t.Errorf("expected the lowest-precedence, rightmost operator to bind last, got %v", top.Op)
	}
}
