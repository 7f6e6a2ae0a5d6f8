// Package holidayfile reads holiday calendars published as JSON, e.g.
//
//	{
//	  "year": 2024,
//	  "holidays": [
//	    {"name": "Independence Day", "from": "2024-08-15"},
//	    {"name": "Diwali", "from": "2024-11-01", "to": "2024-11-02", "type": "optional"}
//	  ]
//	}
package holidayfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/calendar"
)

// File is the JSON document of one holiday calendar.
type File struct {
	Year     int     `json:"year"`
	Holidays []Entry `json:"holidays"`
}

// Entry is one holiday. To defaults to From, Type defaults to mandatory.
type Entry struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// ParseFile reads the calendar at path. A nil companyID produces global holidays.
func ParseFile(path string, companyID *string) ([]calendar.HolidayPeriod, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer f.Close()

	return Parse(f, companyID)
}

// Parse decodes a calendar and converts its entries into holiday periods.
func Parse(r io.Reader, companyID *string) ([]calendar.HolidayPeriod, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holiday file: %w", err)
	}

	holidays := make([]calendar.HolidayPeriod, 0, len(file.Holidays))
	for i, e := range file.Holidays {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("entry %d: %w", i, calendar.ErrHolidayNameRequired)
		}

		from, err := calendar.ParseDate(e.From)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): invalid from date %q: %w", i, name, e.From, err)
		}
		to := from
		if e.To != "" {
			if to, err = calendar.ParseDate(e.To); err != nil {
				return nil, fmt.Errorf("entry %d (%s): invalid to date %q: %w", i, name, e.To, err)
			}
		}

		dr := calendar.DateRange{From: from, To: to}
		if err := dr.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, name, err)
		}
		if file.Year != 0 && from.Year() != file.Year {
			return nil, fmt.Errorf("entry %d (%s): date %s outside calendar year %d", i, name, e.From, file.Year)
		}

		holidays = append(holidays, calendar.HolidayPeriod{
			Name:      name,
			Range:     dr,
			Kind:      calendar.ParseHolidayKind(e.Type),
			CompanyID: companyID,
		})
	}

	return holidays, nil
}
