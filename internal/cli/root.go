// Package cli implements the analyze command-line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "analyze",
		Short:         "Daraz review sentiment analyzer",
		Long:          "Fetches the reviews of Daraz products, labels their sentiment and ranks the most common complaints.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print analyzer version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "analyze version %s\n", version)
		},
	})
	return root
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	root := newRootCmd()
	root.SetOut(os.Stdout)
	if err := root.Execute(); err != nil {
		return ExitUsageError
	}
	return exitCode
}
