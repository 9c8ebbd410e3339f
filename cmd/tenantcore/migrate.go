package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/tenantcore/migrations"
	"github.com/dmitrymomot/tenantcore/pkg/pg"
)

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations with the privileged role",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := bootstrap(flags)
				if err != nil {
					return err
				}
				if err := a.connectOwner(cmd.Context()); err != nil {
					return err
				}
				defer a.close()
				return pg.Migrate(cmd.Context(), a.ownerPool, a.cfg.PG, migrations.FS, a.log)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := bootstrap(flags)
				if err != nil {
					return err
				}
				if err := a.connectOwner(cmd.Context()); err != nil {
					return err
				}
				defer a.close()
				return pg.Rollback(cmd.Context(), a.ownerPool, a.cfg.PG, migrations.FS, a.log)
			},
		},
	)
	return cmd
}
