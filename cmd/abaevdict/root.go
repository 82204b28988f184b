package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/abaevdict/internal/app"
	"github.com/heartmarshall/abaevdict/internal/config"
)

// cli carries state shared by the subcommands.
type cli struct {
	cfgPath string
	cfg     *config.Config
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:     "abaevdict",
		Short:   "Extract the Abaev dictionary into relational tables",
		Version: app.BuildVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			cfg, logger, err := app.Bootstrap(c.cfgPath)
			if err != nil {
				return err
			}
			c.cfg, c.log = cfg, logger
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		c.newBuildCmd(),
		c.newLoadCmd(),
		c.newLangsCmd(),
		c.newMapCmd(),
	)
	return root
}
