package main

import (
	"github.com/spf13/cobra"

	"lotl/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file.lotl>",
	Short: "Recompile a Lotl source file on every change and show live diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watch.Run(args[0])
	},
}
