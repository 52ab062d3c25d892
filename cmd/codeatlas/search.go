package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newSearchCommand() *cobra.Command {
	var kind string
	var exportedOnly bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-match symbol names, optionally filtered by kind and exportedness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()

			sql := `SELECT name, kind, file_path, start_line, is_exported FROM symbols WHERE name LIKE ?`
			params := []interface{}{"%" + args[0] + "%"}
			if kind != "" {
				sql += ` AND kind = ?`
				params = append(params, kind)
			}
			if exportedOnly {
				sql += ` AND is_exported IN (1, 'true')`
			}
			sql += ` ORDER BY name`

			var results []struct {
				Name       string
				Kind       string
				FilePath   string
				StartLine  int64
				IsExported bool
			}
			if err := e.DB.Raw(sql, params...).Scan(&results).Error; err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, r.Kind, r.FilePath, strconv.FormatInt(r.StartLine, 10), strconv.FormatBool(r.IsExported)})
			}
			return renderRows(cmd.OutOrStdout(), outputFormat, []string{"name", "kind", "file", "line", "exported"}, rows)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "filter by symbol kind (function, class, method, ...)")
	cmd.Flags().BoolVar(&exportedOnly, "exported", false, "only exported symbols")
	return cmd
}
