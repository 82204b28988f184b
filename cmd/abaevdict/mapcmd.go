package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/abaevdict/internal/app/mapview"
	"github.com/heartmarshall/abaevdict/internal/tabular"
)

func (c *cli) newMapCmd() *cobra.Command {
	var entry, out string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Print a GeoJSON map of the languages cited in an entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, langs, err := tabular.ReadTables(c.cfg.Output.Dir, tabular.Options{ListDelimiter: c.cfg.Output.ListDelimiter})
			if err != nil {
				return err
			}

			fc, err := mapview.Build(mapview.EntryID(entry), tables, langs, c.cfg.Corpus.PrimaryLanguage)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(fc, "", "  ")
			if err != nil {
				return fmt.Errorf("encode geojson: %w", err)
			}
			data = append(data, '\n')

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "", "headword name or entry id")
	cmd.Flags().StringVar(&out, "out", "", "write to file instead of stdout")
	_ = cmd.MarkFlagRequired("entry")
	return cmd
}
