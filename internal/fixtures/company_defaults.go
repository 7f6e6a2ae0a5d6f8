package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
)

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// SeededDataIDs holds what Seed wrote for a company
type SeededDataIDs struct {
	CompanyID string

	// Leave type values inserted, existing values are skipped
	LeaveTypeValues []string

	// Weekend day names stored for the company
	WeekendDays []string

	// Number of employees that received a fresh leave_limits row
	QuotasCreated int
}

// NewSeededDataIDs creates a new SeededDataIDs for one company
func NewSeededDataIDs(companyID string) *SeededDataIDs {
	return &SeededDataIDs{
		CompanyID:       companyID,
		LeaveTypeValues: make([]string, 0),
		WeekendDays:     make([]string, 0),
	}
}

// ==========================================
// DEFAULT LEAVE TYPES
// ==========================================

// GetDefaultLeaveTypes returns the leave types offered to a new company.
// "Optional" and "Unpaid" are the special categories, the rest draw from the
// standard quota.
func GetDefaultLeaveTypes() []leave.LeaveTypeOption {
	return []leave.LeaveTypeOption{
		{Label: "Annual Leave", Value: "Annual"},
		{Label: "Sick Leave", Value: "Sick"},
		{Label: "Casual Leave", Value: "Casual"},
		{Label: "Optional Holiday", Value: leave.CategoryOptionalLeave.Name},
		{Label: "Unpaid Leave", Value: leave.CategoryUnpaidLeave.Name},
	}
}

// ==========================================
// DEFAULT WEEKEND
// ==========================================

// GetDefaultWeekend returns the Saturday/Sunday weekend for companyID
func GetDefaultWeekend(companyID string) calendar.WeekendConfig {
	return calendar.WeekendConfig{CompanyID: companyID, Days: calendar.FixedWeekend.Days}
}

// ==========================================
// DEFAULT QUOTA
// ==========================================

const (
	DefaultAllowedStandard = 12
	DefaultAllowedOptional = 2
)

// ==========================================
// SEEDER
// ==========================================

// Repository writes company defaults. Inserts never overwrite existing rows.
type Repository interface {
	InsertLeaveTypes(ctx context.Context, companyID string, types []leave.LeaveTypeOption) ([]string, error)
	// InsertWeekend stores the weekend only when the company has none and
	// returns the days in effect afterwards.
	InsertWeekend(ctx context.Context, weekend calendar.WeekendConfig) ([]string, error)
	// EnsureQuotas creates leave_limits rows for employees without one.
	EnsureQuotas(ctx context.Context, companyID string, allowedStandard, allowedOptional int) (int, error)
}

type Seeder struct {
	tx   database.Transactor
	repo Repository
}

func NewSeeder(tx database.Transactor, repo Repository) *Seeder {
	return &Seeder{tx: tx, repo: repo}
}

// Seed writes every default for companyID in one transaction. Running it
// again only fills in what is missing.
func (s *Seeder) Seed(ctx context.Context, companyID string) (*SeededDataIDs, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company ID is required")
	}

	seeded := NewSeededDataIDs(companyID)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		values, err := s.repo.InsertLeaveTypes(ctx, companyID, GetDefaultLeaveTypes())
		if err != nil {
			return fmt.Errorf("failed to seed leave types: %w", err)
		}
		seeded.LeaveTypeValues = append(seeded.LeaveTypeValues, values...)

		days, err := s.repo.InsertWeekend(ctx, GetDefaultWeekend(companyID))
		if err != nil {
			return fmt.Errorf("failed to seed weekend: %w", err)
		}
		seeded.WeekendDays = append(seeded.WeekendDays, days...)

		n, err := s.repo.EnsureQuotas(ctx, companyID, DefaultAllowedStandard, DefaultAllowedOptional)
		if err != nil {
			return fmt.Errorf("failed to seed leave quotas: %w", err)
		}
		seeded.QuotasCreated = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Company defaults seeded",
		"company_id", companyID,
		"leave_types", len(seeded.LeaveTypeValues),
		"quotas_created", seeded.QuotasCreated,
	)
	return seeded, nil
}
