package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newErrorsCommand() *cobra.Command {
	var errorType, language string

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "List the errors table, filterable by error type and language",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()

			where := []string{}
			params := []interface{}{}
			if errorType != "" {
				where = append(where, "error_type = ?")
				params = append(params, errorType)
			}
			if language != "" {
				where = append(where, "language = ?")
				params = append(params, language)
			}

			sql := `SELECT file_path, language, error_type, error_message, size_bytes FROM errors`
			if len(where) > 0 {
				sql += " WHERE " + strings.Join(where, " AND ")
			}
			sql += " ORDER BY file_path"

			var results []struct {
				FilePath     string
				Language     string
				ErrorType    string
				ErrorMessage string
				SizeBytes    int64
			}
			if err := e.DB.Raw(sql, params...).Scan(&results).Error; err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.FilePath, r.Language, r.ErrorType, r.ErrorMessage, strconv.FormatInt(r.SizeBytes, 10)})
			}
			return renderRows(cmd.OutOrStdout(), outputFormat, []string{"file_path", "language", "error_type", "error_message", "size_bytes"}, rows)
		},
	}

	cmd.Flags().StringVar(&errorType, "type", "", "filter by error type (parser_creation, file_read, parse_failure)")
	cmd.Flags().StringVar(&language, "language", "", "filter by language")
	return cmd
}
