package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codeatlas/codeatlas/internal/config"
	"github.com/codeatlas/codeatlas/internal/store"
)

func newOverviewCommand(cfg *config.Config) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Summarize a dataset: language counts, top symbols, hub files, directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := store.Open(datasetDir)
			if err != nil {
				return err
			}
			defer e.Close()

			ov, err := e.BuildOverview(depth)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "# languages")
			var rows [][]string
			for _, l := range ov.LanguageCounts {
				rows = append(rows, []string{l.Language, strconv.FormatInt(l.Files, 10)})
			}
			if err := renderRows(out, outputFormat, []string{"language", "files"}, rows); err != nil {
				return err
			}

			if len(ov.TopSymbols) > 0 {
				fmt.Fprintln(out, "\n# top imported symbols")
				rows = rows[:0]
				for _, s := range ov.TopSymbols {
					rows = append(rows, []string{s.ImportedName, s.Kind, strconv.FormatInt(s.ImportCount, 10)})
				}
				if err := renderRows(out, outputFormat, []string{"name", "kind", "import_count"}, rows); err != nil {
					return err
				}
			}

			if len(ov.HubFiles) > 0 {
				fmt.Fprintln(out, "\n# hub files")
				rows = rows[:0]
				for _, h := range ov.HubFiles {
					rows = append(rows, []string{h.Path, strconv.FormatInt(h.InboundRefs, 10)})
				}
				if err := renderRows(out, outputFormat, []string{"path", "inbound_refs"}, rows); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, "\n# directories")
			rows = rows[:0]
			for _, d := range ov.Directories {
				rows = append(rows, []string{d.Directory, strconv.FormatInt(d.Files, 10)})
			}
			if err := renderRows(out, outputFormat, []string{"directory", "files"}, rows); err != nil {
				return err
			}

			if len(ov.ImportKinds) > 0 {
				fmt.Fprintln(out, "\n# import kinds")
				rows = rows[:0]
				for _, k := range ov.ImportKinds {
					rows = append(rows, []string{k.Kind, strconv.FormatInt(k.Count, 10)})
				}
				if err := renderRows(out, outputFormat, []string{"kind", "count"}, rows); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", cfg.OverviewDepth, "directory-tree depth")
	return cmd
}
