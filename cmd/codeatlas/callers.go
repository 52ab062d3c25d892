package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newCallersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "callers <name>",
		Short: "Fuzzy-match which files import a given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()
			if !e.HasTable("imports") {
				return renderRows(cmd.OutOrStdout(), outputFormat, []string{"source_file", "imported_name", "line"}, nil)
			}

			var results []struct {
				SourceFile   string
				ImportedName string
				Line         int64
			}
			sql := `SELECT source_file, imported_name, line FROM imports WHERE imported_name LIKE ? ORDER BY source_file`
			if err := e.DB.Raw(sql, "%"+args[0]+"%").Scan(&results).Error; err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.SourceFile, r.ImportedName, strconv.FormatInt(r.Line, 10)})
			}
			return renderRows(cmd.OutOrStdout(), outputFormat, []string{"source_file", "imported_name", "line"}, rows)
		},
	}
	return cmd
}
