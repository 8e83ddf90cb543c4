package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lotl/internal/diag"
	"lotl/internal/diagfmt"
	"lotl/internal/source"
)

// colorFlag resolves the --color persistent flag; "auto" enables color
// only when out is attached to a terminal.
func colorFlag(cmd *cobra.Command, out *os.File) (bool, error) {
	v, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch v {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return isTerminal(out), nil
	}
}

// maxDiagnosticsFlag reads the shared --max-diagnostics flag.
func maxDiagnosticsFlag(cmd *cobra.Command) (int, error) {
	return cmd.Root().PersistentFlags().GetInt("max-diagnostics")
}

// jobsFlag reads the shared --jobs flag.
func jobsFlag(cmd *cobra.Command) (int, error) {
	return cmd.Root().PersistentFlags().GetInt("jobs")
}

// printDiagnostics renders diags to w as a sorted, pretty-printed list and
// reports whether any are at SevError or above.
func printDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, maxDiagnostics int, useColor bool) bool {
	if len(diags) == 0 {
		return false
	}
	bag := diag.NewBag(max(min(maxDiagnostics, len(diags)), 0))
	reporter := diag.BagReporter{Bag: bag}
	hasErrors := false
	for i := range diags {
		d := diags[i]
		reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		if d.Severity >= diag.SevError {
			hasErrors = true
		}
	}
	bag.Sort()
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: useColor, Context: 2, ShowNotes: true})
	return hasErrors
}

// loadSingleFile reads path into a fresh FileSet, returning its FileID.
func loadSingleFile(path string) (*source.FileSet, source.FileID, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return fs, id, nil
}
