package watch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.lotl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path
}

func TestRecompileCleanFileHasNoDiagnostics(t *testing.T) {
	path := writeSource(t, "func start() -> i64 { return 10 + 20; }")
	snap := recompile(path)
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if snap.HasErrors() {
		t.Fatalf("expected no error diagnostics, got %v", snap.Diagnostics)
	}
	if snap.IR == "" {
		t.Fatalf("expected emitted IR, got empty string")
	}
}

func TestRecompileReportsDiagnosticsForBrokenSource(t *testing.T) {
	path := writeSource(t, "func start() -> i64 { return ; }")
	snap := recompile(path)
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if !snap.HasErrors() {
		t.Fatalf("expected a parse diagnostic for missing expression, got none")
	}
}

func TestRecompileMissingFileReturnsErr(t *testing.T) {
	snap := recompile(filepath.Join(t.TempDir(), "does-not-exist.lotl"))
	if snap.Err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestModTimeMissingFileIsZero(t *testing.T) {
	mt := modTime(filepath.Join(t.TempDir(), "does-not-exist.lotl"))
	if !mt.IsZero() {
		t.Fatalf("expected zero time for missing file, got %v", mt)
	}
}
