// Command lotl is the CLI front end for the Lotl compiler: it wires the
// lex/parse/infer/codegen pipeline (internal/lexer, internal/parser,
// internal/infer, internal/codegen) to subcommands that print
// intermediate stages or emit a finished LLVM IR module.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lotl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lotl",
	Short: "Lotl language compiler",
	Long:  "Lotl compiles a small statically-typed C-like language to textual LLVM IR.",
}

func main() {
	rootCmd.Version = version.VersionString()

	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to collect per run")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel lexer workers for directory inputs (0=auto)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal, used to decide
// the "auto" setting of --color.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
