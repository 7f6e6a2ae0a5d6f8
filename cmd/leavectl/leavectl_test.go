package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestToken_SignsWithConfiguredSecret(t *testing.T) {
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	t.Setenv("JWT_ACCESS_EXPIRATION_TIME", "2h")

	out, err := execute(t, "token", "--user", "u1", "--employee", "e1", "--company", "c1", "--role", "manager")
	require.NoError(t, err)

	decoded, err := jwt.NewJWTService("cli-secret", time.Hour).JWTAuth().Decode(strings.TrimSpace(out))
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "e1", claims["employee_id"])
	assert.Equal(t, "c1", claims["company_id"])
	assert.Equal(t, "manager", claims["role"])
}

func TestToken_UnknownRole(t *testing.T) {
	_, err := execute(t, "token", "--user", "u1", "--role", "admin")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestToken_RequiresUser(t *testing.T) {
	_, err := execute(t, "token")

	assert.Error(t, err)
}

func TestWorkdays_RejectsBadDateBeforeConnecting(t *testing.T) {
	_, err := execute(t, "workdays", "--company", "c1", "--from", "2024-13-01", "--to", "2024-12-31")

	assert.Error(t, err)
}

func TestHolidaysImport_MissingFile(t *testing.T) {
	_, err := execute(t, "holidays", "import", "--file", t.TempDir()+"/missing.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open holiday file")
}

func TestSummaryMonths(t *testing.T) {
	months, err := summaryMonths(0)
	require.NoError(t, err)
	assert.Len(t, months, 12)
	assert.Equal(t, time.January, months[0])
	assert.Equal(t, time.December, months[11])

	months, err = summaryMonths(2)
	require.NoError(t, err)
	assert.Equal(t, []time.Month{time.February}, months)

	_, err = summaryMonths(13)
	assert.Error(t, err)
}

func TestPrintWorkingDays(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)

	printWorkingDays(root, calendar.WorkingDaysResponse{
		From:         "2024-08-15",
		To:           "2024-08-19",
		WorkingDays:  []string{"2024-08-16", "2024-08-19"},
		Count:        2,
		WeekendDays:  []string{"2024-08-17", "2024-08-18"},
		HolidayDates: []string{"2024-08-15"},
	})

	assert.Equal(t, "2024-08-15 .. 2024-08-19: 2 working days\n"+
		"  2024-08-16\n"+
		"  2024-08-19\n"+
		"Weekend: 2024-08-17, 2024-08-18\n"+
		"Holidays: 2024-08-15\n", out.String())
}

type recordingInvalidator struct {
	companies []string
	err       error
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, companyID string) error {
	r.companies = append(r.companies, companyID)
	return r.err
}

func TestDropCachedWeekend(t *testing.T) {
	inv := &recordingInvalidator{}

	dropCachedWeekend(t.Context(), inv, "c1")

	assert.Equal(t, []string{"c1"}, inv.companies)
}

// Test an unreachable cache does not fail the seed
func TestDropCachedWeekend_ErrorIsLogged(t *testing.T) {
	inv := &recordingInvalidator{err: errors.New("connection refused")}

	assert.NotPanics(t, func() { dropCachedWeekend(t.Context(), inv, "c1") })
	assert.Equal(t, []string{"c1"}, inv.companies)
}
