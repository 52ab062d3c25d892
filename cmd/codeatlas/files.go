package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newFilesCommand() *cobra.Command {
	var language, directory, sortBy string
	var minLines, minSize int64

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List files, filterable by language/directory/size and sortable by line count, size, or dependents",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()

			selectCols := "f.path, f.language, f.size_bytes, f.line_count"
			from := "files f"
			order := "f.path"

			switch sortBy {
			case "", "path":
				order = "f.path"
			case "lines":
				order = "f.line_count DESC"
			case "size":
				order = "f.size_bytes DESC"
			case "dependents":
				if !e.HasTable("imports") {
					return fmt.Errorf("files: --sort dependents requires an imports table, none present in this dataset")
				}
				selectCols = "f.path, f.language, f.size_bytes, f.line_count, count(i.source_file) AS dependents"
				from = "files f LEFT JOIN imports i ON i.module_specifier LIKE '%' || f.name || '%'"
				order = "dependents DESC"
			default:
				return fmt.Errorf("files: unknown --sort %q: want path, lines, size, or dependents", sortBy)
			}

			where := []string{}
			params := []interface{}{}
			if language != "" {
				where = append(where, "f.language = ?")
				params = append(params, language)
			}
			if directory != "" {
				where = append(where, "f.path LIKE ?")
				params = append(params, directory+"%")
			}
			if minLines > 0 {
				where = append(where, "f.line_count >= ?")
				params = append(params, minLines)
			}
			if minSize > 0 {
				where = append(where, "f.size_bytes >= ?")
				params = append(params, minSize)
			}

			sql := "SELECT " + selectCols + " FROM " + from
			if len(where) > 0 {
				sql += " WHERE " + strings.Join(where, " AND ")
			}
			if sortBy == "dependents" {
				sql += " GROUP BY f.path"
			}
			sql += " ORDER BY " + order

			var results []struct {
				Path       string
				Language   string
				SizeBytes  int64
				LineCount  int64
				Dependents int64
			}
			if err := e.DB.Raw(sql, params...).Scan(&results).Error; err != nil {
				return err
			}

			headers := []string{"path", "language", "size_bytes", "line_count"}
			if sortBy == "dependents" {
				headers = append(headers, "dependents")
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				row := []string{r.Path, r.Language, strconv.FormatInt(r.SizeBytes, 10), strconv.FormatInt(r.LineCount, 10)}
				if sortBy == "dependents" {
					row = append(row, strconv.FormatInt(r.Dependents, 10))
				}
				rows = append(rows, row)
			}
			return renderRows(cmd.OutOrStdout(), outputFormat, headers, rows)
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "filter by language")
	cmd.Flags().StringVar(&directory, "dir", "", "filter by path prefix")
	cmd.Flags().Int64Var(&minLines, "min-lines", 0, "minimum line count")
	cmd.Flags().Int64Var(&minSize, "min-size", 0, "minimum size in bytes")
	cmd.Flags().StringVar(&sortBy, "sort", "path", "sort key: path, lines, size, dependents")
	return cmd
}
