package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"lotl/internal/diag"
	"lotl/internal/source"
)

func TestPrintDiagnosticsReturnsHasErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte("x"))

	warn := diag.Diagnostic{Severity: diag.SevWarning, Code: diag.TypeMismatch, Message: "warn", Primary: source.Span{File: id, Start: 0, End: 1}}
	if hasErrors := printDiagnostics(&bytes.Buffer{}, []diag.Diagnostic{warn}, fs, 10, false); hasErrors {
		t.Fatalf("expected a warning-only diagnostic list to report hasErrors=false")
	}

	fatal := diag.Diagnostic{Severity: diag.SevError, Code: diag.LexInvalidChar, Message: "bad", Primary: source.Span{File: id, Start: 0, End: 1}}
	if hasErrors := printDiagnostics(&bytes.Buffer{}, []diag.Diagnostic{fatal}, fs, 10, false); !hasErrors {
		t.Fatalf("expected an error diagnostic to report hasErrors=true")
	}
}

func TestPrintDiagnosticsEmptyIsNoop(t *testing.T) {
	var buf bytes.Buffer
	if hasErrors := printDiagnostics(&buf, nil, source.NewFileSet(), 10, false); hasErrors {
		t.Fatalf("expected no errors for an empty diagnostic list")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for an empty diagnostic list, got %q", buf.String())
	}
}

func TestLoadSingleFileReadsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lotl")
	writeTestFile(t, path, "func start() -> i64 { return 0; }")

	fs, id, err := loadSingleFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := fs.Get(id)
	if f == nil {
		t.Fatalf("expected a resolvable file for %s", path)
	}
}

func TestLoadSingleFileMissingReturnsError(t *testing.T) {
	if _, _, err := loadSingleFile(filepath.Join(t.TempDir(), "missing.lotl")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
