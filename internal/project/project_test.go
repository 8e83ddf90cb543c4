package project_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lotl/internal/project"
	"lotl/internal/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestLoadSourcesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lotl")
	writeFile(t, path, "func start() -> i64 { return 0; }")

	paths, err := project.LoadSources(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Fatalf("expected [%s], got %v", path, paths)
	}
}

func TestLoadSourcesDirectoryWalksAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.lotl"), "func b() -> i64 { return 1; }")
	writeFile(t, filepath.Join(dir, "a.lotl"), "func a() -> i64 { return 0; }")
	writeFile(t, filepath.Join(dir, "readme.txt"), "not lotl")

	paths, err := project.LoadSources(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 .lotl files, got %v", paths)
	}
	if filepath.Base(paths[0]) != "a.lotl" || filepath.Base(paths[1]) != "b.lotl" {
		t.Fatalf("expected sorted order a, b; got %v", paths)
	}
}

func TestCompileFilesAndMergeModules(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.lotl")
	pathB := filepath.Join(dir, "b.lotl")
	writeFile(t, pathA, "func a() -> i64 { return 1; }")
	writeFile(t, pathB, "func b() -> i64 { return 2; }")

	fs := source.NewFileSet()
	results, err := project.CompileFiles(context.Background(), fs, []string{pathA, pathB}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if len(r.Diags) != 0 {
			t.Errorf("unexpected diagnostics for %s: %v", r.Path, r.Diags)
		}
		if r.Module == nil {
			t.Fatalf("expected a parsed module for %s", r.Path)
		}
	}

	merged := project.MergeModules(results)
	if len(merged.Definitions) != 2 {
		t.Fatalf("expected 2 merged definitions, got %d", len(merged.Definitions))
	}
}

func TestLoadConfigRejectsMissingBuildEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lotl.toml")
	writeFile(t, path, "[package]\nname = \"demo\"\n")

	if _, err := project.LoadConfig(path); err == nil {
		t.Fatalf("expected an error for a manifest missing [build].entry")
	}
}

func TestLoadManifestFindsFileWalkingUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lotl.toml"), "[package]\nname = \"demo\"\n\n[build]\nentry = \"src/main.lotl\"\n")
	nested := filepath.Join(root, "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	manifest, ok, err := project.LoadManifest(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find lotl.toml")
	}
	if manifest.EntryPath() != filepath.Join(root, "src", "main.lotl") {
		t.Errorf("unexpected entry path: %s", manifest.EntryPath())
	}
	if manifest.OutputPath() != filepath.Join(root, "src", "main.ll") {
		t.Errorf("unexpected default output path: %s", manifest.OutputPath())
	}
}
