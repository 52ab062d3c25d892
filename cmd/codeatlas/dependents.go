package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newDependentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dependents <file>",
		Short: "List imports whose module specifier contains the given file's base name (reverse of deps)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()
			if !e.HasTable("imports") {
				return renderRows(cmd.OutOrStdout(), outputFormat, []string{"source_file", "module_specifier", "line"}, nil)
			}

			name := filepath.Base(args[0])
			var results []struct {
				SourceFile      string
				ModuleSpecifier string
				Line            int64
			}
			sql := `SELECT source_file, module_specifier, line FROM imports WHERE module_specifier LIKE ? ORDER BY source_file`
			if err := e.DB.Raw(sql, "%"+name+"%").Scan(&results).Error; err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.SourceFile, r.ModuleSpecifier, fmt.Sprintf("%d", r.Line)})
			}
			return renderRows(cmd.OutOrStdout(), outputFormat, []string{"source_file", "module_specifier", "line"}, rows)
		},
	}
	return cmd
}
