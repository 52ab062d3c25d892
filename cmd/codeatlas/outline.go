package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newOutlineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "List every symbol declared in one file, in source order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()

			var results []struct {
				Name       string
				Kind       string
				StartLine  int64
				EndLine    int64
				IsExported bool
			}
			sql := `SELECT name, kind, start_line, end_line, is_exported FROM symbols WHERE file_path = ? ORDER BY start_line`
			if err := e.DB.Raw(sql, args[0]).Scan(&results).Error; err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, r.Kind, strconv.FormatInt(r.StartLine, 10), strconv.FormatInt(r.EndLine, 10), strconv.FormatBool(r.IsExported)})
			}
			return renderRows(cmd.OutOrStdout(), outputFormat, []string{"name", "kind", "start_line", "end_line", "exported"}, rows)
		},
	}
	return cmd
}
