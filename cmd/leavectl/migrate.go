package main

import (
	"fmt"

	"github.com/cmlabs-hris/leave-calendar/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Apply(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}
