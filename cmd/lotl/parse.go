package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lotl/internal/diag"
	"lotl/internal/diagfmt"
	"lotl/internal/lexer"
	"lotl/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.lotl>",
	Short: "Parse a Lotl source file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	fileSet, fileID, err := loadSingleFile(args[0])
	if err != nil {
		return err
	}
	file := fileSet.Get(fileID)

	lexed := lexer.Lex(file)
	parsed := parser.Parse(lexed.Value)

	diags := make([]diag.Diagnostic, 0, len(lexed.Diagnostics)+len(parsed.Diagnostics))
	diags = append(diags, lexed.Diagnostics...)
	diags = append(diags, parsed.Diagnostics...)

	useColor, err := colorFlag(cmd, os.Stderr)
	if err != nil {
		return err
	}
	hasErrors := printDiagnostics(os.Stderr, diags, fileSet, maxDiagnostics, useColor)

	if err := diagfmt.FormatAST(os.Stdout, parsed.Value.Definitions, parsed.Value.Exprs); err != nil {
		return err
	}

	if hasErrors {
		return fmt.Errorf("parsing reported errors")
	}
	return nil
}
