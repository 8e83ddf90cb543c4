package project

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lotl/internal/ast"
	"lotl/internal/diag"
	"lotl/internal/lexer"
	"lotl/internal/parser"
	"lotl/internal/source"
	"lotl/internal/token"
)

// FileResult is one source file's outcome through lex+parse.
type FileResult struct {
	Path   string
	FileID source.FileID
	Module *parser.Module
	Diags  []diag.Diagnostic
}

// lexedFile is the intermediate per-file state lexFiles produces, before
// the sequential parse pass.
type lexedFile struct {
	path   string
	fileID source.FileID
	stream *token.Stream
	diags  []diag.Diagnostic
}

// listLotlFiles returns every *.lotl file under dir, sorted for a
// deterministic merge order.
func listLotlFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".lotl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LoadSources resolves entryPath to a list of source files: itself, if
// it names a single file, or every *.lotl file beneath it if it names a
// directory.
func LoadSources(entryPath string) ([]string, error) {
	info, err := os.Stat(entryPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{entryPath}, nil
	}
	return listLotlFiles(entryPath)
}

// CompileFiles loads, lexes, and parses every path in paths. Lexing is
// fanned out across an errgroup, since each file's lex stage is
// independent and side-effect-free; parsing then runs back on the
// calling goroutine, sequentially in path order, so the
// parse/infer/codegen handoff stays single-threaded.
func CompileFiles(ctx context.Context, fileSet *source.FileSet, paths []string, jobs int) ([]FileResult, error) {
	lexed, err := lexFiles(ctx, fileSet, paths, jobs)
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, len(lexed))
	for i, lf := range lexed {
		if lf.stream == nil {
			results[i] = FileResult{Path: lf.path, FileID: lf.fileID, Diags: lf.diags}
			continue
		}
		parsed := parser.Parse(lf.stream)
		diags := make([]diag.Diagnostic, 0, len(lf.diags)+len(parsed.Diagnostics))
		diags = append(diags, lf.diags...)
		diags = append(diags, parsed.Diagnostics...)
		results[i] = FileResult{Path: lf.path, FileID: lf.fileID, Module: parsed.Value, Diags: diags}
	}
	return results, nil
}

// lexFiles loads every path in paths one after another, then lexes them
// concurrently via errgroup.
func lexFiles(ctx context.Context, fileSet *source.FileSet, paths []string, jobs int) ([]lexedFile, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]lexedFile, len(paths))

	fileIDs := make([]source.FileID, len(paths))
	loadErrs := make([]error, len(paths))
	for i, p := range paths {
		id, err := fileSet.Load(p)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		fileIDs[i] = id
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, p := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if loadErrs[i] != nil {
				results[i] = lexedFile{path: p, diags: []diag.Diagnostic{{
					Severity: diag.SevError,
					Code:     diag.ProjMissingFile,
					Message:  "failed to load file: " + loadErrs[i].Error(),
				}}}
				return nil
			}
			file := fileSet.Get(fileIDs[i])
			lexed := lexer.Lex(file)
			results[i] = lexedFile{path: p, fileID: fileIDs[i], stream: lexed.Value, diags: lexed.Diagnostics}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// MergeModules combines every file's Module into one: definitions are
// concatenated in file order (the order lexFiles returns, which is the
// sorted-path order LoadSources produced) and the per-file expression
// arenas are extended into a single shared IdGraph, since codegen and
// inference key their results by ExprID regardless of which file an
// expression came from.
func MergeModules(results []FileResult) *parser.Module {
	merged := &parser.Module{Exprs: ast.NewIdGraph[ast.Expr](0)}
	for _, r := range results {
		if r.Module == nil {
			continue
		}
		merged.Definitions = append(merged.Definitions, r.Module.Definitions...)
		if r.Module.Exprs != nil {
			merged.Exprs.Extend(r.Module.Exprs)
		}
	}
	return merged
}
