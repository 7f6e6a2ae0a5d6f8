package leave

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	calendarService "github.com/cmlabs-hris/leave-calendar/internal/service/calendar"
)

// memoryStore implements the leave repositories over maps.
type memoryStore struct {
	requests map[string]leave.LeaveRequest
	quotas   map[string]leave.LeaveQuota
	types    []leave.LeaveTypeOption
	upcoming []leave.UpcomingEvent

	locked    []string
	calls     int
	createErr error

	// onLock runs once inside the next LockEmployee, standing in for a
	// transaction that commits while the caller waits on the lock.
	onLock func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		requests: make(map[string]leave.LeaveRequest),
		quotas:   make(map[string]leave.LeaveQuota),
	}
}

type undoLogKey struct{}

type undoLog struct {
	undo []func()
}

// record registers fn to revert a write when the enclosing transaction fails.
func (m *memoryStore) record(ctx context.Context, fn func()) {
	if log, ok := ctx.Value(undoLogKey{}).(*undoLog); ok {
		log.undo = append(log.undo, fn)
	}
}

// fakeTransactor reverts the writes made through its context when fn fails.
// Nested calls join the outer transaction.
type fakeTransactor struct {
	store *memoryStore
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(undoLogKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, undoLogKey{}, log)); err != nil {
		for i := len(log.undo) - 1; i >= 0; i-- {
			log.undo[i]()
		}
		return err
	}
	return nil
}

func (m *memoryStore) restoreQuota(ctx context.Context, employeeID string) {
	prev, existed := m.quotas[employeeID]
	m.record(ctx, func() {
		if existed {
			m.quotas[employeeID] = prev
		} else {
			delete(m.quotas, employeeID)
		}
	})
}

func (m *memoryStore) restoreRequest(ctx context.Context, id string) {
	prev, existed := m.requests[id]
	m.record(ctx, func() {
		if existed {
			m.requests[id] = prev
		} else {
			delete(m.requests, id)
		}
	})
}

func (m *memoryStore) GetByEmployee(ctx context.Context, employeeID, companyID string) (leave.LeaveQuota, error) {
	m.calls++
	q, ok := m.quotas[employeeID]
	if !ok || q.CompanyID != companyID {
		return leave.LeaveQuota{}, leave.ErrQuotaNotFound
	}
	return q, nil
}

func (m *memoryStore) GetForUpdate(ctx context.Context, employeeID, companyID string) (leave.LeaveQuota, error) {
	return m.GetByEmployee(ctx, employeeID, companyID)
}

func (m *memoryStore) IncrementTaken(ctx context.Context, employeeID, companyID string, column leave.QuotaColumn, days int) error {
	m.calls++
	m.restoreQuota(ctx, employeeID)
	q := m.quotas[employeeID]
	switch column {
	case leave.QuotaColumnStandard:
		q.StandardTaken += days
	case leave.QuotaColumnOptional:
		q.OptionalTaken += days
	}
	m.quotas[employeeID] = q
	return nil
}

func (m *memoryStore) DecrementTaken(ctx context.Context, employeeID, companyID string, column leave.QuotaColumn, days int) error {
	m.calls++
	m.restoreQuota(ctx, employeeID)
	q := m.quotas[employeeID]
	switch column {
	case leave.QuotaColumnStandard:
		q.StandardTaken = max(q.StandardTaken-days, 0)
	case leave.QuotaColumnOptional:
		q.OptionalTaken = max(q.OptionalTaken-days, 0)
	}
	m.quotas[employeeID] = q
	return nil
}

func (m *memoryStore) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	m.calls++
	if m.createErr != nil {
		return leave.LeaveRequest{}, m.createErr
	}
	request.AppliedAt = time.Now()
	m.restoreRequest(ctx, request.ID)
	m.requests[request.ID] = request
	return request, nil
}

func (m *memoryStore) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	m.calls++
	r, ok := m.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (m *memoryStore) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *memoryStore) LockEmployee(ctx context.Context, employeeID string) error {
	m.calls++
	m.locked = append(m.locked, employeeID)
	if hook := m.onLock; hook != nil {
		m.onLock = nil
		hook()
	}
	return nil
}

func (m *memoryStore) CheckOverlapping(ctx context.Context, employeeID string, r calendar.DateRange) (bool, error) {
	m.calls++
	for _, req := range m.requests {
		if req.EmployeeID == employeeID && req.Range.Overlaps(r) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, quotaReserved bool) error {
	m.calls++
	r, ok := m.requests[id]
	if !ok || r.Status != leave.LeaveRequestStatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	m.restoreRequest(ctx, id)
	r.Status = status
	r.QuotaReserved = quotaReserved
	m.requests[id] = r
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.calls++
	if _, ok := m.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	m.restoreRequest(ctx, id)
	delete(m.requests, id)
	return nil
}

func (m *memoryStore) sorted(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.From.Before(out[j].Range.From) })
	return out
}

func (m *memoryStore) ListPendingByCompany(ctx context.Context, companyID string) ([]leave.LeaveRequest, error) {
	return m.sorted(func(r leave.LeaveRequest) bool {
		return r.CompanyID == companyID && r.Status == leave.LeaveRequestStatusPending
	}), nil
}

func (m *memoryStore) ListScheduled(ctx context.Context, employeeID string, today time.Time) ([]leave.LeaveRequest, error) {
	return m.sorted(func(r leave.LeaveRequest) bool {
		return r.EmployeeID == employeeID && !r.Range.From.Before(today)
	}), nil
}

func (m *memoryStore) ListHistory(ctx context.Context, employeeID string, today time.Time) ([]leave.LeaveRequest, error) {
	return m.sorted(func(r leave.LeaveRequest) bool {
		return r.EmployeeID == employeeID && r.Range.From.Before(today)
	}), nil
}

func (m *memoryStore) ListOverlapping(ctx context.Context, employeeID, companyID string, r calendar.DateRange) ([]leave.LeaveRequest, error) {
	return m.sorted(func(req leave.LeaveRequest) bool {
		return req.EmployeeID == employeeID && req.CompanyID == companyID && req.Range.Overlaps(r)
	}), nil
}

func (m *memoryStore) ListUpcomingApproved(ctx context.Context, employeeID, companyID string, after time.Time, limit int) ([]leave.UpcomingEvent, error) {
	var out []leave.UpcomingEvent
	for _, e := range m.upcoming {
		if e.Date.After(after) {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStore) ListByCompany(ctx context.Context, companyID string) ([]leave.LeaveTypeOption, error) {
	return m.types, nil
}

// fakeCalendar builds classifiers from fixed holidays and weekend days.
type fakeCalendar struct {
	calendar.CalendarService
	weekend  calendar.WeekendConfig
	holidays []calendar.HolidayPeriod
	err      error
}

func (f *fakeCalendar) Classifier(ctx context.Context, companyID string, r calendar.DateRange) (calendar.Classifier, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return calendarService.NewClassifier(f.weekend, f.holidays), nil
}
