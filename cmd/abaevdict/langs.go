package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/abaevdict/internal/adapter/provider/glottolog"
	"github.com/heartmarshall/abaevdict/internal/tabular"
)

func (c *cli) newLangsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langs",
		Short: "Maintain the language reference table",
	}
	cmd.AddCommand(c.newFillCoordsCmd())
	return cmd
}

func (c *cli) newFillCoordsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fill-coords",
		Short: "Look up missing language coordinates in Glottolog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.cfg.Corpus.LanguagesPath
			langs, err := tabular.ReadLanguagesFile(path)
			if err != nil {
				return err
			}

			provider := glottolog.NewProvider(c.cfg.Gazetteer, c.log)
			filled, res, err := provider.FillCoords(cmd.Context(), langs)
			if err != nil {
				return err
			}

			if out == "" {
				out = path
			}
			if err := tabular.WriteLanguagesFile(out, filled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d, unchanged %d, failed %d -> %s\n",
				res.Updated, res.Skipped, res.Failed, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the table here instead of overwriting corpus.languages_path")
	return cmd
}
