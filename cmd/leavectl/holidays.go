package main

import (
	"fmt"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/holidayfile"
	"github.com/spf13/cobra"
)

func newHolidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage holiday calendars",
	}
	cmd.AddCommand(newHolidaysImportCmd())
	return cmd
}

func newHolidaysImportCmd() *cobra.Command {
	var path, companyID string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON holiday calendar",
		Long: `Import a JSON holiday calendar. Without --company the holidays are
global and apply to every company.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var company *string
			if companyID != "" {
				company = &companyID
			}

			holidays, err := holidayfile.ParseFile(path, company)
			if err != nil {
				return err
			}

			svc, db, err := openCalendar(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := svc.ImportHolidays(cmd.Context(), holidays)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d holidays from %s\n", n, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "path to the holiday JSON file")
	cmd.Flags().StringVar(&companyID, "company", "", "company ID, empty for global holidays")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
