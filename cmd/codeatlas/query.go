package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/store"
)

func newQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a raw SQL query against the dataset's files/symbols/imports/comments tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()

			sqlRows, err := e.DB.Raw(args[0]).Rows()
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}
			defer sqlRows.Close()

			cols, err := sqlRows.Columns()
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}

			var rows [][]string
			values := make([]interface{}, len(cols))
			scanTargets := make([]interface{}, len(cols))
			for i := range values {
				scanTargets[i] = &values[i]
			}
			for sqlRows.Next() {
				if err := sqlRows.Scan(scanTargets...); err != nil {
					return fmt.Errorf("query: %w", err)
				}
				row := make([]string, len(cols))
				for i, v := range values {
					row[i] = fmt.Sprintf("%v", v)
				}
				rows = append(rows, row)
			}
			if err := sqlRows.Err(); err != nil {
				return fmt.Errorf("query: %w", err)
			}

			return renderRows(cmd.OutOrStdout(), outputFormat, cols, rows)
		},
	}
	return cmd
}
