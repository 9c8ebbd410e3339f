package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/tenantcore/pkg/agency"
)

func newAgencyCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agency",
		Short: "Manage agencies with the privileged role",
	}
	cmd.AddCommand(
		newAgencyCreateCmd(flags),
		newAgencySetActiveCmd(flags, "activate", true),
		newAgencySetActiveCmd(flags, "deactivate", false),
	)
	return cmd
}

func newAgencyCreateCmd(flags *rootFlags) *cobra.Command {
	var in agency.NewAgency
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new agency",
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

			created, err := a.directory(a.ownerPool).Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", created.ID, created.Slug)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Slug, "slug", "", "subdomain slug (derived from the name when empty)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAgencySetActiveCmd(flags *rootFlags, use string, active bool) *cobra.Command {
	var slug string
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Mark an agency %sd", use),
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
			return a.directory(a.ownerPool).SetActive(cmd.Context(), slug, active)
		},
	}
	cmd.Flags().StringVar(&slug, "slug", "", "agency slug")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}
