package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newImportsCommand() *cobra.Command {
	var module, kind, filePrefix, external string
	var typeOnly bool

	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List import rows, filterable by module substring, kind, file prefix, type-only, and external/internal",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()
			if !e.HasTable("imports") {
				return renderRows(cmd.OutOrStdout(), outputFormat,
					[]string{"source_file", "module_specifier", "imported_name", "kind", "is_type_only", "is_external", "line"}, nil)
			}

			where := []string{}
			params := []interface{}{}
			if module != "" {
				where = append(where, "module_specifier LIKE ?")
				params = append(params, "%"+module+"%")
			}
			if kind != "" {
				where = append(where, "kind = ?")
				params = append(params, kind)
			}
			if filePrefix != "" {
				where = append(where, "source_file LIKE ?")
				params = append(params, filePrefix+"%")
			}
			if typeOnly {
				where = append(where, "is_type_only IN (1, 'true')")
			}
			switch external {
			case "":
			case "true", "external":
				where = append(where, "is_external IN (1, 'true')")
			case "false", "internal":
				where = append(where, "is_external IN (0, 'false')")
			default:
				return fmt.Errorf("imports: unknown --external %q: want external or internal", external)
			}

			sql := `SELECT source_file, module_specifier, imported_name, kind, is_type_only, is_external, line FROM imports`
			if len(where) > 0 {
				sql += " WHERE " + strings.Join(where, " AND ")
			}
			sql += " ORDER BY source_file, line"

			var results []struct {
				SourceFile      string
				ModuleSpecifier string
				ImportedName    string
				Kind            string
				IsTypeOnly      bool
				IsExternal      bool
				Line            int64
			}
			if err := e.DB.Raw(sql, params...).Scan(&results).Error; err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{
					r.SourceFile, r.ModuleSpecifier, r.ImportedName, r.Kind,
					strconv.FormatBool(r.IsTypeOnly), strconv.FormatBool(r.IsExternal), strconv.FormatInt(r.Line, 10),
				})
			}
			return renderRows(cmd.OutOrStdout(), outputFormat,
				[]string{"source_file", "module_specifier", "imported_name", "kind", "is_type_only", "is_external", "line"}, rows)
		},
	}

	cmd.Flags().StringVar(&module, "module", "", "filter by module specifier substring")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by import kind")
	cmd.Flags().StringVar(&filePrefix, "file", "", "filter by source file path prefix")
	cmd.Flags().BoolVar(&typeOnly, "type-only", false, "only type-only imports")
	cmd.Flags().StringVar(&external, "external", "", "external or internal")
	return cmd
}
