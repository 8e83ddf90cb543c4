package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lotl/internal/diagfmt"
	"lotl/internal/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file.lotl>",
	Short: "Lex a Lotl source file and print its token tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runLex(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
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

	useColor, err := colorFlag(cmd, os.Stderr)
	if err != nil {
		return err
	}
	hasErrors := printDiagnostics(os.Stderr, lexed.Diagnostics, fileSet, maxDiagnostics, useColor)

	switch format {
	case "pretty":
		if err := diagfmt.FormatTokensPretty(os.Stdout, lexed.Value, fileSet); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.FormatTokensJSON(os.Stdout, lexed.Value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if hasErrors {
		return fmt.Errorf("lexing reported errors")
	}
	return nil
}
