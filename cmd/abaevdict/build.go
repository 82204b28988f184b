package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/abaevdict/internal/app/pipeline"
)

func (c *cli) newBuildCmd() *cobra.Command {
	var load bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Extract the corpus and write the CSV tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := pipeline.New(c.log, c.cfg)

			b, err := p.Build(ctx)
			if err == nil && load {
				err = c.load(ctx, p, b)
			}
			renderPhases(cmd.OutOrStdout(), p.Results())
			if err != nil {
				return err
			}
			renderBuild(cmd.OutOrStdout(), b)
			return nil
		},
	}

	cmd.Flags().BoolVar(&load, "load", false, "also load the tables into the configured database")
	return cmd
}

func (c *cli) newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the CSV tables of an earlier build into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := pipeline.New(c.log, c.cfg)

			b, err := p.ReadBuild(ctx)
			if err == nil {
				err = c.load(ctx, p, b)
			}
			renderPhases(cmd.OutOrStdout(), p.Results())
			return err
		},
	}
}

func (c *cli) load(ctx context.Context, p *pipeline.Pipeline, b *pipeline.Build) error {
	store, err := pipeline.OpenStore(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return p.Load(ctx, store, b)
}
