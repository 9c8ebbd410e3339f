package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "tenantcore",
		Short:         "Tenant isolation service for multi-tenant agency data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files to load before reading the environment (default .env)")

	cmd.AddCommand(
		newServeCmd(flags),
		newMigrateCmd(flags),
		newSeedCmd(flags),
		newAgencyCmd(flags),
	)
	return cmd
}

// bootstrap loads config and the logger shared by every subcommand.
func bootstrap(flags *rootFlags) (*app, error) {
	cfg, err := loadConfig(flags.envFiles)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: newLogger(cfg)}, nil
}
