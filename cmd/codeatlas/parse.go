package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/config"
	"github.com/codeatlas/codeatlas/internal/pipeline"
	"github.com/codeatlas/codeatlas/internal/store"
)

// newParseCommand runs the full extraction pipeline over a source tree
// and writes the five-table dataset (§4.5, §4.6). Per-file failures are
// reported on stderr and recorded in the errors table; only a startup
// failure (unreadable root) produces a non-zero exit with nothing written
// (§7).
func newParseCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <root>",
		Short: "Walk a source tree and write its columnar dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			driver := pipeline.New(cfg.Workers)

			out, err := driver.Run(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			if err := store.Write(datasetDir, out); err != nil {
				return fmt.Errorf("parse: writing dataset: %w", err)
			}

			for _, e := range out.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", e.FilePath, e.ErrorType, e.ErrorMessage)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "parsed %d files (%d errors), %d symbols, %d imports, %d comments -> %s\n",
				len(out.Files), len(out.Errors), len(out.Symbols), len(out.Imports), len(out.Comments), datasetDir)
			return nil
		},
	}
	return cmd
}
