package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newDepsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <file>",
		Short: "List the imports a file declares",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()
			if !e.HasTable("imports") {
				return renderRows(cmd.OutOrStdout(), outputFormat,
					[]string{"module_specifier", "imported_name", "kind", "is_external", "line"}, nil)
			}

			var results []struct {
				ModuleSpecifier string
				ImportedName    string
				Kind            string
				IsExternal      bool
				Line            int64
			}
			sql := `SELECT module_specifier, imported_name, kind, is_external, line FROM imports WHERE source_file = ? ORDER BY line`
			if err := e.DB.Raw(sql, args[0]).Scan(&results).Error; err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.ModuleSpecifier, r.ImportedName, r.Kind, strconv.FormatBool(r.IsExternal), strconv.FormatInt(r.Line, 10)})
			}
			return renderRows(cmd.OutOrStdout(), outputFormat, []string{"module_specifier", "imported_name", "kind", "is_external", "line"}, rows)
		},
	}
	return cmd
}
