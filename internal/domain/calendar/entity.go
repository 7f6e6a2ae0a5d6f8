package calendar

import (
	"log/slog"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Normalize strips the time of day and location, keeping the calendar date.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange normalizes both bounds and validates the range.
func NewDateRange(from, to time.Time) (DateRange, error) {
	r := DateRange{From: Normalize(from), To: Normalize(to)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return ErrInvalidDateRange
	}
	if r.From.After(r.To) {
		return ErrInvalidDateRange
	}
	return nil
}

// MaxRangeDays bounds the span of a date range taken from a request.
const MaxRangeDays = 366

// ExceedsMaxSpan reports whether from and to form a range longer than
// MaxRangeDays. Unparseable or inverted dates are left to other checks.
func ExceedsMaxSpan(from, to string) bool {
	f, err := ParseDate(from)
	if err != nil {
		return false
	}
	t, err := ParseDate(to)
	if err != nil {
		return false
	}
	return DateRange{From: f, To: t}.Span() > MaxRangeDays
}

// Days returns every date in the range, ascending.
func (r DateRange) Days() []time.Time {
	from, to := Normalize(r.From), Normalize(r.To)
	if from.After(to) {
		return nil
	}
	days := make([]time.Time, 0, r.Span())
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Span is the inclusive number of calendar days between From and To.
func (r DateRange) Span() int {
	from, to := Normalize(r.From), Normalize(r.To)
	if from.After(to) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func (r DateRange) Contains(date time.Time) bool {
	d := Normalize(date)
	return !d.Before(Normalize(r.From)) && !d.After(Normalize(r.To))
}

// Overlaps reports whether both inclusive ranges share at least one date.
func (r DateRange) Overlaps(other DateRange) bool {
	return !Normalize(r.From).After(Normalize(other.To)) && !Normalize(r.To).Before(Normalize(other.From))
}

// MonthRange returns the first and last day of the given month.
func MonthRange(year int, month time.Month) DateRange {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: first, To: first.AddDate(0, 1, -1)}
}

type HolidayKind int

const (
	HolidayNone HolidayKind = iota
	HolidayMandatory
	HolidayOptional
)

func (k HolidayKind) String() string {
	switch k {
	case HolidayMandatory:
		return "mandatory"
	case HolidayOptional:
		return "optional"
	default:
		return "none"
	}
}

// ParseHolidayKind maps the stored leave_type column of a holiday.
// Only "optional" marks an optional holiday, everything else is mandatory.
func ParseHolidayKind(s string) HolidayKind {
	if strings.EqualFold(strings.TrimSpace(s), "optional") {
		return HolidayOptional
	}
	return HolidayMandatory
}

// HolidayPeriod entity. A nil CompanyID marks a global holiday.
type HolidayPeriod struct {
	ID        string
	Name      string
	Range     DateRange
	Kind      HolidayKind
	CompanyID *string
}

// WeekendConfig lists the weekdays a company treats as non-working.
type WeekendConfig struct {
	CompanyID string
	Days      []time.Weekday
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekendConfig converts stored weekday names into a WeekendConfig.
// Unknown names are skipped.
func ParseWeekendConfig(companyID string, names []string) WeekendConfig {
	cfg := WeekendConfig{CompanyID: companyID}
	seen := make(map[time.Weekday]bool)
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			slog.Warn("Ignoring unknown weekend day", "company_id", companyID, "day", name)
			continue
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		cfg.Days = append(cfg.Days, day)
	}
	return cfg
}

func (w WeekendConfig) Names() []string {
	names := make([]string, 0, len(w.Days))
	for _, d := range w.Days {
		names = append(names, d.String())
	}
	return names
}

func (w WeekendConfig) IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	for _, d := range w.Days {
		if d == wd {
			return true
		}
	}
	return false
}

// FixedWeekend is the Saturday/Sunday rule.
var FixedWeekend = WeekendConfig{Days: []time.Weekday{time.Saturday, time.Sunday}}

// WorkingDaysSummary stores the number of working days of a company month.
type WorkingDaysSummary struct {
	CompanyID        string
	Year             int
	Month            int
	TotalWorkingDays int
	UpdatedAt        time.Time
}
