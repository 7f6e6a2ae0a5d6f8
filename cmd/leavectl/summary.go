package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Manage working-day summaries",
	}
	cmd.AddCommand(newSummaryRebuildCmd())
	return cmd
}

func newSummaryRebuildCmd() *cobra.Command {
	var (
		companyID string
		year      int
		month     int
	)

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Recompute the working-day summary of a year or a single month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			months, err := summaryMonths(month)
			if err != nil {
				return err
			}

			svc, db, err := openCalendar(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			for _, m := range months {
				summary, err := svc.RebuildWorkingDaysSummary(cmd.Context(), companyID, year, m)
				if err != nil {
					return fmt.Errorf("rebuild %04d-%02d: %w", year, int(m), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%04d-%02d: %d working days\n", summary.Year, summary.Month, summary.TotalWorkingDays)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "company ID")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year")
	cmd.Flags().IntVar(&month, "month", 0, "single month 1-12, 0 rebuilds the whole year")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

// summaryMonths expands the --month flag. Zero means every month.
func summaryMonths(month int) ([]time.Month, error) {
	if month < 0 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if month != 0 {
		return []time.Month{time.Month(month)}, nil
	}

	months := make([]time.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, m)
	}
	return months, nil
}
