package main

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/spf13/cobra"
)

func newWorkdaysCmd() *cobra.Command {
	var companyID, from, to string

	cmd := &cobra.Command{
		Use:   "workdays",
		Short: "List the working days of a company between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := calendar.WorkingDaysRequest{From: from, To: to}
			if err := req.Validate(); err != nil {
				return err
			}

			svc, db, err := openCalendar(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			resp, err := svc.PreviewWorkingDays(cmd.Context(), companyID, req)
			if err != nil {
				return err
			}
			printWorkingDays(cmd, resp)
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "company ID")
	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printWorkingDays(cmd *cobra.Command, resp calendar.WorkingDaysResponse) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s .. %s: %d working days\n", resp.From, resp.To, resp.Count)
	for _, d := range resp.WorkingDays {
		fmt.Fprintf(out, "  %s\n", d)
	}
	if len(resp.WeekendDays) > 0 {
		fmt.Fprintf(out, "Weekend: %s\n", strings.Join(resp.WeekendDays, ", "))
	}
	if len(resp.HolidayDates) > 0 {
		fmt.Fprintf(out, "Holidays: %s\n", strings.Join(resp.HolidayDates, ", "))
	}
}
