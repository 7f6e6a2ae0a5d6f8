package leave

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaLedger_ApplyThenReverse(t *testing.T) {
	tests := []struct {
		name     string
		category leave.Category
		days     int
	}{
		{name: "standard", category: leave.StandardCategory("Annual"), days: 3},
		{name: "optional", category: leave.CategoryOptionalLeave, days: 1},
		{name: "unpaid", category: leave.CategoryUnpaidLeave, days: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newMemoryStore()
			store.quotas[testEmployeeID] = leave.LeaveQuota{
				EmployeeID: testEmployeeID, CompanyID: testCompanyID,
				AllowedStandard: 12, StandardTaken: 4, AllowedOptional: 2, OptionalTaken: 1,
			}
			before := store.quotas[testEmployeeID]
			ledger := NewQuotaLedger(store)

			require.NoError(t, ledger.Apply(ctx, testEmployeeID, testCompanyID, tt.category, tt.days))
			require.NoError(t, ledger.Reverse(ctx, testEmployeeID, testCompanyID, tt.category, tt.days))

			assert.Equal(t, before, store.quotas[testEmployeeID])
		})
	}
}

func TestQuotaLedger_ReverseFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.quotas[testEmployeeID] = leave.LeaveQuota{EmployeeID: testEmployeeID, CompanyID: testCompanyID, AllowedStandard: 12, StandardTaken: 1}
	ledger := NewQuotaLedger(store)

	require.NoError(t, ledger.Reverse(ctx, testEmployeeID, testCompanyID, leave.StandardCategory("Annual"), 5))

	assert.Zero(t, store.quotas[testEmployeeID].StandardTaken)
}

func TestQuotaLedger_CheckCapacity(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.quotas[testEmployeeID] = leave.LeaveQuota{
		EmployeeID: testEmployeeID, CompanyID: testCompanyID,
		AllowedStandard: 12, StandardTaken: 10, AllowedOptional: 2, OptionalTaken: 2,
	}
	ledger := NewQuotaLedger(store)

	_, err := ledger.CheckCapacity(ctx, testEmployeeID, testCompanyID, leave.StandardCategory("Annual"), 2)
	assert.NoError(t, err)

	_, err = ledger.CheckCapacity(ctx, testEmployeeID, testCompanyID, leave.StandardCategory("Annual"), 3)
	assert.ErrorIs(t, err, leave.ErrQuotaExceeded)

	_, err = ledger.CheckCapacity(ctx, testEmployeeID, testCompanyID, leave.CategoryOptionalLeave, 1)
	assert.ErrorIs(t, err, leave.ErrQuotaExceeded)

	_, err = ledger.CheckCapacity(ctx, testEmployeeID, testCompanyID, leave.CategoryUnpaidLeave, 100)
	assert.NoError(t, err)
}

func TestQuotaLedger_CheckCapacity_MissingRow(t *testing.T) {
	ctx := context.Background()
	ledger := NewQuotaLedger(newMemoryStore())

	_, err := ledger.CheckCapacity(ctx, testEmployeeID, testCompanyID, leave.StandardCategory("Annual"), 1)
	assert.ErrorIs(t, err, leave.ErrQuotaNotFound)

	quota, err := ledger.CheckCapacity(ctx, testEmployeeID, testCompanyID, leave.CategoryUnpaidLeave, 1)
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, quota.EmployeeID)
}
