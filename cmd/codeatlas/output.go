package main

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// renderRows prints header/rows in one of the three formats the command
// surface promises (§6): tabular (aligned columns), record (one
// key: value block per row, for piping into a pager one result at a
// time), or delimited (CSV, for scripting).
func renderRows(w io.Writer, format string, headers []string, rows [][]string) error {
	switch format {
	case "", "tabular":
		t := tablewriter.NewWriter(w)
		t.SetHeader(headers)
		for _, r := range rows {
			t.Append(r)
		}
		t.Render()
		return nil
	case "record":
		for i, r := range rows {
			if i > 0 {
				fmt.Fprintln(w)
			}
			for j, h := range headers {
				if j < len(r) {
					fmt.Fprintf(w, "%s: %s\n", h, r[j])
				}
			}
		}
		return nil
	case "delimited":
		cw := csv.NewWriter(w)
		if err := cw.Write(headers); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write(r); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unknown format %q: want tabular, record, or delimited", format)
	}
}
