package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/leave-calendar/internal/fixtures"
	"github.com/cmlabs-hris/leave-calendar/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var companyID string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill in default leave types, weekend and leave quotas for a company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			seeder := fixtures.NewSeeder(postgresql.NewTransactor(db), postgresql.NewCompanyDefaultsRepository(db))
			seeded, err := seeder.Seed(cmd.Context(), companyID)
			if err != nil {
				return err
			}

			if weekendCache, rdb := openWeekendCache(cfg, db); weekendCache != nil {
				defer rdb.Close()
				dropCachedWeekend(cmd.Context(), weekendCache, companyID)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Leave types added: %d %v\n", len(seeded.LeaveTypeValues), seeded.LeaveTypeValues)
			fmt.Fprintf(out, "Weekend: %s\n", strings.Join(seeded.WeekendDays, ", "))
			fmt.Fprintf(out, "Leave quotas created: %d\n", seeded.QuotasCreated)
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "company ID")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

type weekendInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}

// dropCachedWeekend evicts the company's cached weekend so readers pick up
// the seeded days. The entry expires on its own if Redis is unreachable.
func dropCachedWeekend(ctx context.Context, inv weekendInvalidator, companyID string) {
	if err := inv.Invalidate(ctx, companyID); err != nil {
		slog.WarnContext(ctx, "Weekend cache invalidation failed", "company_id", companyID, "error", err)
	}
}
