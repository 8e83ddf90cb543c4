package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lotl/internal/diag"
	"lotl/internal/infer"
	"lotl/internal/lexer"
	"lotl/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.lotl>",
	Short: "Run lex, parse, and type inference, printing only diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	inferred := infer.Infer(parsed.Value)

	diags := make([]diag.Diagnostic, 0, len(lexed.Diagnostics)+len(parsed.Diagnostics)+len(inferred.Diagnostics))
	diags = append(diags, lexed.Diagnostics...)
	diags = append(diags, parsed.Diagnostics...)
	diags = append(diags, inferred.Diagnostics...)

	useColor, err := colorFlag(cmd, os.Stdout)
	if err != nil {
		return err
	}
	hasErrors := printDiagnostics(os.Stdout, diags, fileSet, maxDiagnostics, useColor)
	if !hasErrors && len(diags) == 0 {
		fmt.Fprintln(os.Stdout, "no diagnostics")
	}
	if hasErrors {
		return fmt.Errorf("check reported errors")
	}
	return nil
}
