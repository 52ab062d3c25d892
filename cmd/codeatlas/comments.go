package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newCommentsCommand() *cobra.Command {
	var filePrefix, kind, symbol string
	var documentedOnly bool

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "List comment rows, filterable by file prefix, kind, documented flag, and associated symbol name",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()
			if !e.HasTable("comments") {
				return renderRows(cmd.OutOrStdout(), outputFormat,
					[]string{"file_path", "kind", "start_line", "associated_symbol", "text"}, nil)
			}

			where := []string{}
			params := []interface{}{}
			if filePrefix != "" {
				where = append(where, "file_path LIKE ?")
				params = append(params, filePrefix+"%")
			}
			if kind != "" {
				where = append(where, "kind = ?")
				params = append(params, kind)
			}
			if symbol != "" {
				where = append(where, "associated_symbol = ?")
				params = append(params, symbol)
			}
			if documentedOnly {
				where = append(where, "associated_symbol != ''")
			}

			sql := `SELECT file_path, kind, start_line, associated_symbol, text FROM comments`
			if len(where) > 0 {
				sql += " WHERE " + strings.Join(where, " AND ")
			}
			sql += " ORDER BY file_path, start_line"

			var results []struct {
				FilePath         string
				Kind             string
				StartLine        int64
				AssociatedSymbol string
				Text             string
			}
			if err := e.DB.Raw(sql, params...).Scan(&results).Error; err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.FilePath, r.Kind, strconv.FormatInt(r.StartLine, 10), r.AssociatedSymbol, r.Text})
			}
			return renderRows(cmd.OutOrStdout(), outputFormat, []string{"file_path", "kind", "start_line", "associated_symbol", "text"}, rows)
		},
	}

	cmd.Flags().StringVar(&filePrefix, "file", "", "filter by file path prefix")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by comment kind (line, block, doc)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "filter by associated symbol name")
	cmd.Flags().BoolVar(&documentedOnly, "documented", false, "only comments associated with a symbol")
	return cmd
}
