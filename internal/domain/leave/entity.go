package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
)

type CategoryKind int

const (
	CategoryStandard CategoryKind = iota
	CategoryOptional
	CategoryUnpaid
)

// Category is the leave type of a request. Standard categories keep the
// company-defined name, e.g. "Annual" or "Sick".
type Category struct {
	Kind CategoryKind
	Name string
}

var (
	CategoryOptionalLeave = Category{Kind: CategoryOptional, Name: "Optional"}
	CategoryUnpaidLeave   = Category{Kind: CategoryUnpaid, Name: "Unpaid"}
)

func StandardCategory(name string) Category {
	return Category{Kind: CategoryStandard, Name: strings.TrimSpace(name)}
}

// ParseCategory maps a stored or submitted leave_type value to a Category.
func ParseCategory(s string) (Category, error) {
	name := strings.TrimSpace(s)
	switch strings.ToLower(name) {
	case "":
		return Category{}, ErrInvalidCategory
	case "optional":
		return CategoryOptionalLeave, nil
	case "unpaid":
		return CategoryUnpaidLeave, nil
	default:
		return StandardCategory(name), nil
	}
}

func (c Category) String() string {
	return c.Name
}

func (c Category) IsOptional() bool { return c.Kind == CategoryOptional }

func (c Category) IsUnpaid() bool { return c.Kind == CategoryUnpaid }

// QuotaColumn selects the leave_limits counter a category consumes.
type QuotaColumn int

const (
	QuotaColumnNone QuotaColumn = iota
	QuotaColumnStandard
	QuotaColumnOptional
)

func (c Category) QuotaColumn() QuotaColumn {
	switch c.Kind {
	case CategoryOptional:
		return QuotaColumnOptional
	case CategoryUnpaid:
		return QuotaColumnNone
	default:
		return QuotaColumnStandard
	}
}

// LeaveQuota entity (leave_limits row)
type LeaveQuota struct {
	EmployeeID      string
	CompanyID       string
	AllowedStandard int
	StandardTaken   int
	AllowedOptional int
	OptionalTaken   int
	UpdatedAt       time.Time
}

func (q LeaveQuota) StandardLeft() int {
	return q.AllowedStandard - q.StandardTaken
}

func (q LeaveQuota) OptionalLeft() int {
	return q.AllowedOptional - q.OptionalTaken
}

// Left is the remaining quota of the column category consumes.
func (q LeaveQuota) Left(category Category) int {
	switch category.QuotaColumn() {
	case QuotaColumnStandard:
		return q.StandardLeft()
	case QuotaColumnOptional:
		return q.OptionalLeft()
	default:
		return 0
	}
}

// Balance is the combined remaining quota, never negative.
func (q LeaveQuota) Balance() int {
	return max(q.AllowedStandard+q.AllowedOptional-q.StandardTaken-q.OptionalTaken, 0)
}

// CheckCapacity reports whether days more of category fit in the quota.
func (q LeaveQuota) CheckCapacity(category Category, days int) error {
	switch category.QuotaColumn() {
	case QuotaColumnStandard:
		if q.StandardTaken+days > q.AllowedStandard {
			return &QuotaExceededError{StandardLeft: q.StandardLeft(), OptionalLeft: q.OptionalLeft()}
		}
	case QuotaColumnOptional:
		if q.OptionalTaken+days > q.AllowedOptional {
			return &QuotaExceededError{StandardLeft: q.StandardLeft(), OptionalLeft: q.OptionalLeft()}
		}
	}
	return nil
}

// Applied returns the quota after consuming days of category.
func (q LeaveQuota) Applied(category Category, days int) LeaveQuota {
	switch category.QuotaColumn() {
	case QuotaColumnStandard:
		q.StandardTaken += days
	case QuotaColumnOptional:
		q.OptionalTaken += days
	}
	return q
}

// Reversed returns the quota after releasing days of category, floored at zero.
func (q LeaveQuota) Reversed(category Category, days int) LeaveQuota {
	switch category.QuotaColumn() {
	case QuotaColumnStandard:
		q.StandardTaken = max(q.StandardTaken-days, 0)
	case QuotaColumnOptional:
		q.OptionalTaken = max(q.OptionalTaken-days, 0)
	}
	return q
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "Approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "Rejected"
)

// ParseDecision accepts only the two manager decisions.
func ParseDecision(s string) (LeaveRequestStatus, error) {
	switch LeaveRequestStatus(s) {
	case LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return LeaveRequestStatus(s), nil
	default:
		return "", ErrInvalidDecision
	}
}

// LeaveRequest entity
type LeaveRequest struct {
	ID             string
	EmployeeID     string
	CompanyID      string
	Category       Category
	Range          calendar.DateRange
	Reason         string
	ChargeableDays int
	Status         LeaveRequestStatus

	// QuotaReserved is true while the ledger holds this request's days.
	QuotaReserved bool

	AppliedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// LeaveTypeOption is a selectable leave type of a company.
type LeaveTypeOption struct {
	Label string
	Value string
}

// UpcomingEvent is either an approved leave or a holiday in the future.
type UpcomingEvent struct {
	Date  time.Time
	Title string
}

// ReservationMode decides when the ledger consumes quota.
type ReservationMode string

const (
	ReserveOnSubmission ReservationMode = "submission"
	ReserveOnApproval   ReservationMode = "approval"
)
