// Package project loads a lotl.toml project manifest (entry file, output
// path, target triple) and fans a multi-file source tree out to the
// lexer concurrently before the single-threaded parse/infer/codegen
// handoff.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// PackageConfig is the `[package]` table of lotl.toml.
type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig is the `[build]` table of lotl.toml.
type BuildConfig struct {
	// Entry is the project-root-relative path to the file (or directory
	// of files) the build starts from.
	Entry string `toml:"entry"`
	// Output is the project-root-relative path the emitted .ll file is
	// written to.
	Output string `toml:"output"`
	// Target is an LLVM target triple, passed through unchanged into a
	// `target triple = "..."` line; empty means "let the caller decide".
	Target string `toml:"target"`
}

// Config is the decoded shape of lotl.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// Manifest pairs a decoded Config with the location it was loaded from.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

const manifestFileName = "lotl.toml"

// FindManifest walks upward from startDir looking for lotl.toml, stopping
// at the filesystem root. Returns ok=false, err=nil if none is found.
func FindManifest(startDir string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, manifestFileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadConfig decodes and validates the lotl.toml at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build") || strings.TrimSpace(cfg.Build.Entry) == "" {
		return Config{}, fmt.Errorf("%s: missing [build].entry", path)
	}
	if strings.TrimSpace(cfg.Build.Output) == "" {
		cfg.Build.Output = strings.TrimSuffix(cfg.Build.Entry, filepath.Ext(cfg.Build.Entry)) + ".ll"
	}
	return cfg, nil
}

// LoadManifest finds and loads the manifest governing startDir.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// EntryPath resolves the manifest's [build].entry against its root.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Entry))
}

// OutputPath resolves the manifest's [build].output against its root.
func (m *Manifest) OutputPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Output))
}
