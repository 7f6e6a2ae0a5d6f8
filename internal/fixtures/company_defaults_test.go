package fixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeRepository struct {
	types       []leave.LeaveTypeOption
	weekend     calendar.WeekendConfig
	quotaArgs   [2]int
	quotaErr    error
	existingDay []string
}

func (f *fakeRepository) InsertLeaveTypes(ctx context.Context, companyID string, types []leave.LeaveTypeOption) ([]string, error) {
	f.types = types
	values := make([]string, 0, len(types))
	for _, t := range types {
		values = append(values, t.Value)
	}
	return values, nil
}

func (f *fakeRepository) InsertWeekend(ctx context.Context, weekend calendar.WeekendConfig) ([]string, error) {
	f.weekend = weekend
	if f.existingDay != nil {
		return f.existingDay, nil
	}
	return weekend.Names(), nil
}

func (f *fakeRepository) EnsureQuotas(ctx context.Context, companyID string, allowedStandard, allowedOptional int) (int, error) {
	f.quotaArgs = [2]int{allowedStandard, allowedOptional}
	return 3, f.quotaErr
}

func TestSeed_WritesDefaultsInOneTransaction(t *testing.T) {
	tx := &fakeTransactor{}
	repo := &fakeRepository{}

	seeded, err := NewSeeder(tx, repo).Seed(t.Context(), "c1")
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "c1", seeded.CompanyID)
	assert.Equal(t, []string{"Annual", "Sick", "Casual", "Optional", "Unpaid"}, seeded.LeaveTypeValues)
	assert.Equal(t, []string{"Saturday", "Sunday"}, seeded.WeekendDays)
	assert.Equal(t, 3, seeded.QuotasCreated)
	assert.Equal(t, [2]int{DefaultAllowedStandard, DefaultAllowedOptional}, repo.quotaArgs)
	assert.Equal(t, "c1", repo.weekend.CompanyID)
}

func TestSeed_KeepsExistingWeekend(t *testing.T) {
	repo := &fakeRepository{existingDay: []string{"Friday"}}

	seeded, err := NewSeeder(&fakeTransactor{}, repo).Seed(t.Context(), "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Friday"}, seeded.WeekendDays)
}

func TestSeed_PropagatesRepositoryError(t *testing.T) {
	repo := &fakeRepository{quotaErr: errors.New("boom")}

	_, err := NewSeeder(&fakeTransactor{}, repo).Seed(t.Context(), "c1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed leave quotas")
}

func TestSeed_RequiresCompany(t *testing.T) {
	_, err := NewSeeder(&fakeTransactor{}, &fakeRepository{}).Seed(t.Context(), "")

	assert.Error(t, err)
}

func TestDefaultLeaveTypes_SpecialCategoriesParse(t *testing.T) {
	kinds := make(map[leave.CategoryKind]int)
	for _, lt := range GetDefaultLeaveTypes() {
		c, err := leave.ParseCategory(lt.Value)
		require.NoError(t, err)
		kinds[c.Kind]++
	}

	assert.Equal(t, 1, kinds[leave.CategoryOptional])
	assert.Equal(t, 1, kinds[leave.CategoryUnpaid])
	assert.Equal(t, 3, kinds[leave.CategoryStandard])
}

func TestDefaultWeekend(t *testing.T) {
	w := GetDefaultWeekend("c1")

	assert.True(t, w.IsWeekend(time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.IsWeekend(time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)))
}
