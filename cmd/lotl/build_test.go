package main

import (
	"os"
	"path/filepath"
	"testing"

	"lotl/internal/ast"
	"lotl/internal/lexer"
	"lotl/internal/parser"
	"lotl/internal/source"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestResolveBuildEntryWithFileArgDerivesOutput(t *testing.T) {
	entry, output, target, err := resolveBuildEntry([]string{"src/main.lotl"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != "src/main.lotl" {
		t.Errorf("expected entry to pass through unchanged, got %q", entry)
	}
	if output != "main.ll" {
		t.Errorf("expected default output main.ll, got %q", output)
	}
	if target != "" {
		t.Errorf("expected no target triple without a manifest, got %q", target)
	}
}

func TestResolveBuildEntryNoArgsRequiresManifest(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer func() { _ = os.Chdir(wd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}

	if _, _, _, err := resolveBuildEntry(nil); err == nil {
		t.Fatalf("expected an error when no manifest or file is given")
	}
}

func parseDefinitions(t *testing.T, src string) []ast.AstDefinition {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte(src))
	lexed := lexer.Lex(fs.Get(id))
	if len(lexed.Diagnostics) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", lexed.Diagnostics)
	}
	parsed := parser.Parse(lexed.Value)
	if len(parsed.Diagnostics) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parsed.Diagnostics)
	}
	return parsed.Value.Definitions
}

func TestFlattenDefinitionsCapturesFunctionShape(t *testing.T) {
	defs := parseDefinitions(t, "func add() -> i64")
	entries := flattenDefinitions(defs)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Name != "add" || e.Kind != "function" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.HasBody {
		t.Errorf("expected a declaration with no body")
	}
	if e.Returns != "int64" {
		t.Errorf("expected returns int64, got %q", e.Returns)
	}
}

func TestFlattenDefinitionsWalksNamespaceMembers(t *testing.T) {
	defs := parseDefinitions(t, "namespace math { func square() -> i64 { } }")
	entries := flattenDefinitions(defs)
	if len(entries) != 2 {
		t.Fatalf("expected namespace + member entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Kind != "namespace" || entries[0].Name != "math" {
		t.Errorf("expected first entry to be the namespace, got %+v", entries[0])
	}
	if entries[1].Name != "math.square" {
		t.Errorf("expected dotted member name, got %q", entries[1].Name)
	}
}
