package main

import (
	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/config"
)

const appVersion = "0.1.0"

var (
	datasetDir   string
	outputFormat string
)

// newRootCommand wires every command family from §6 under a single
// cobra root, mirroring the teacher's own `morfx` root (Use/Short/Version
// on the top-level command, persistent flags shared by every subcommand).
func newRootCommand() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:     "codeatlas",
		Short:   "Queryable analytical dataset for source trees",
		Version: appVersion,
	}

	root.PersistentFlags().StringVar(&datasetDir, "dataset", cfg.OutputDir, "dataset directory produced by 'parse'")
	root.PersistentFlags().StringVar(&outputFormat, "format", "tabular", "output format: tabular, record, delimited")

	root.AddCommand(
		newParseCommand(cfg),
		newOverviewCommand(cfg),
		newSearchCommand(),
		newOutlineCommand(),
		newFilesCommand(),
		newReadCommand(),
		newDepsCommand(),
		newDependentsCommand(),
		newCallersCommand(),
		newImportsCommand(),
		newCommentsCommand(),
		newErrorsCommand(),
		newQueryCommand(),
	)

	return root
}
