// Package watch implements a Bubble Tea TUI that recompiles a Lotl
// source file whenever it changes and renders the latest diagnostics
// live.
package watch

import (
	"os"
	"time"

	"lotl/internal/codegen"
	"lotl/internal/diag"
	"lotl/internal/infer"
	"lotl/internal/irbuilder"
	"lotl/internal/lexer"
	"lotl/internal/parser"
	"lotl/internal/result"
	"lotl/internal/source"
	"lotl/internal/token"
)

// Snapshot is the outcome of one recompilation pass.
type Snapshot struct {
	Path        string
	ModTime     time.Time
	Diagnostics []diag.Diagnostic
	FileSet     *source.FileSet
	IR          string
	Err         error
}

// HasErrors reports whether any diagnostic reached SevError or above.
func (s Snapshot) HasErrors() bool {
	for i := range s.Diagnostics {
		if s.Diagnostics[i].Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// recompile runs the full pipeline over path in a fresh FileSet,
// composed monadically: lex, bind parse, fork inference (so the parsed
// module stays available alongside the type context), bind codegen.
// Diagnostics from every stage accumulate into the final Results.
func recompile(path string) Snapshot {
	info, statErr := os.Stat(path)
	if statErr != nil {
		return Snapshot{Path: path, Err: statErr}
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return Snapshot{Path: path, ModTime: info.ModTime(), Err: err}
	}
	file := fs.Get(fileID)

	parsed := result.Bind(lexer.Lex(file), func(s *token.Stream) result.Results[*parser.Module] {
		return parser.Parse(s)
	})
	typed := result.Fork(parsed, func(m *parser.Module) result.Results[*infer.Context] {
		return infer.Infer(m)
	})
	generated := result.Bind(typed, func(p result.Forked[*parser.Module, *infer.Context]) result.Results[*irbuilder.Module] {
		return codegen.Generate(p.Input, p.Output)
	})

	snap := Snapshot{Path: path, ModTime: info.ModTime(), Diagnostics: generated.Diagnostics, FileSet: fs}
	if generated.Value != nil {
		snap.IR = generated.Value.Emit()
	}
	return snap
}

// modTime stats path, returning the zero time on error so a vanished
// file simply never looks "changed" until it reappears.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
