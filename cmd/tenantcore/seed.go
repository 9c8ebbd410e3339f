package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/tenantcore/pkg/seed"
)

func newSeedCmd(flags *rootFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load agencies and members from a YAML fixture file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			fixtures, err := seed.Decode(f)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			a, err := bootstrap(flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.connectOwner(ctx); err != nil {
				return err
			}
			defer a.close()
			if err := a.connectApp(ctx); err != nil {
				return err
			}

			// Agencies need the owner role; members go through the service
			// so they are written inside the tenant boundary.
			svc, err := a.service()
			if err != nil {
				return err
			}
			rep, err := seed.New(a.directory(a.ownerPool), svc, a.log).Apply(ctx, fixtures)
			a.log.InfoContext(ctx, "seed finished",
				slog.Int("agencies_created", rep.AgenciesCreated),
				slog.Int("agencies_existing", rep.AgenciesExisting),
				slog.Int("agencies_skipped", rep.AgenciesSkipped),
				slog.Int("members_created", rep.MembersCreated),
				slog.Int("members_existing", rep.MembersExisting),
			)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the YAML fixture file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
