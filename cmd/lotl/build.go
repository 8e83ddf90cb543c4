package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"lotl/internal/ast"
	"lotl/internal/codegen"
	"lotl/internal/diag"
	"lotl/internal/infer"
	"lotl/internal/project"
	"lotl/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build [file.lotl|directory]",
	Short: "Compile a Lotl source file or project to LLVM IR",
	Long: `Build runs the full pipeline (lex, parse, infer, codegen) and writes the
resulting LLVM IR as text. With no argument, build looks for a lotl.toml
project manifest in the current directory or the nearest parent directory
that has one, and compiles its [build].entry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output path for the emitted .ll file (default: stdout)")
	buildCmd.Flags().String("emit-cache", "", "also write a msgpack-encoded AST dump to this path")
}

func runBuild(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}
	jobs, err := jobsFlag(cmd)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	emitCache, err := cmd.Flags().GetString("emit-cache")
	if err != nil {
		return err
	}

	entry, defaultOutput, target, err := resolveBuildEntry(args)
	if err != nil {
		return err
	}
	if output == "" {
		output = defaultOutput
	}

	paths, err := project.LoadSources(entry)
	if err != nil {
		return fmt.Errorf("failed to resolve sources: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .lotl files found under %s", entry)
	}

	fileSet := source.NewFileSet()
	results, err := project.CompileFiles(cmd.Context(), fileSet, paths, jobs)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	var diags []diag.Diagnostic
	for _, r := range results {
		diags = append(diags, r.Diags...)
	}
	merged := project.MergeModules(results)

	inferred := infer.Infer(merged)
	diags = append(diags, inferred.Diagnostics...)

	generated := codegen.Generate(merged, inferred.Value)
	diags = append(diags, generated.Diagnostics...)

	useColor, err := colorFlag(cmd, os.Stderr)
	if err != nil {
		return err
	}
	hasErrors := printDiagnostics(os.Stderr, diags, fileSet, maxDiagnostics, useColor)

	ir := generated.Value.Emit()
	if target != "" {
		ir = fmt.Sprintf("target triple = %q\n\n%s", target, ir)
	}
	if output == "" || output == "-" {
		fmt.Fprintln(os.Stdout, ir)
	} else {
		if err := os.WriteFile(output, []byte(ir+"\n"), 0o644); err != nil { //nolint:gosec // IR output is not sensitive
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
	}

	if emitCache != "" {
		if err := writeASTCache(emitCache, merged.Definitions); err != nil {
			return fmt.Errorf("failed to write AST cache: %w", err)
		}
	}

	if hasErrors {
		return fmt.Errorf("build reported errors")
	}
	return nil
}

// resolveBuildEntry turns build's optional positional argument into an
// entry path, a default output path, and an optional target triple.
// With no argument it looks for a lotl.toml manifest (whose [build]
// table supplies all three); with one, it treats the argument as either
// a single file or a source directory and derives "<name>.ll" as the
// default output.
func resolveBuildEntry(args []string) (entry, defaultOutput, target string, err error) {
	if len(args) == 1 {
		entry = args[0]
		base := filepath.Base(entry)
		ext := filepath.Ext(base)
		defaultOutput = base[:len(base)-len(ext)] + ".ll"
		if ext == "" {
			defaultOutput = base + ".ll"
		}
		return entry, defaultOutput, "", nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", "", "", err
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return "", "", "", err
	}
	if !ok {
		return "", "", "", fmt.Errorf("no lotl.toml found and no file/directory given; pass a path or create lotl.toml")
	}
	return manifest.EntryPath(), manifest.OutputPath(), manifest.Config.Build.Target, nil
}

// astCacheEntry is the msgpack-serializable shape of one top-level
// definition, flattened to the fields worth round-tripping through a
// build cache: name, kind, and function signature shape.
type astCacheEntry struct {
	Name       string   `msgpack:"name"`
	Kind       string   `msgpack:"kind"`
	Parameters []string `msgpack:"parameters,omitempty"`
	Returns    string   `msgpack:"returns,omitempty"`
	HasBody    bool     `msgpack:"has_body,omitempty"`
}

func writeASTCache(path string, defs []ast.AstDefinition) error {
	entries := flattenDefinitions(defs)
	data, err := msgpack.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) //nolint:gosec // cache file has no sensitive content
}

// flattenDefinitions walks defs, including namespace members recursively
// with a dotted name, into a flat cache-friendly list.
func flattenDefinitions(defs []ast.AstDefinition) []astCacheEntry {
	var entries []astCacheEntry
	var walk func(prefix string, defs []ast.AstDefinition)
	walk = func(prefix string, defs []ast.AstDefinition) {
		for _, d := range defs {
			name := d.Name
			if prefix != "" {
				name = prefix + "." + name
			}
			switch d.Kind {
			case ast.DefFunction:
				entry := astCacheEntry{Name: name, Kind: "function"}
				if d.Function != nil {
					entry.Returns = d.Function.Returns.String()
					entry.HasBody = d.Function.HasBody
					for _, p := range d.Function.Parameters {
						entry.Parameters = append(entry.Parameters, p.String())
					}
				}
				entries = append(entries, entry)
			case ast.DefNamespace:
				entries = append(entries, astCacheEntry{Name: name, Kind: "namespace"})
				if d.Namespace != nil {
					walk(name, d.Namespace.Members)
				}
			}
		}
	}
	walk("", defs)
	return entries
}
