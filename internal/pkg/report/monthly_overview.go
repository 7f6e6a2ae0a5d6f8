package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type HolidayRow struct {
	Name string
	From string
	To   string
}

type LeaveRow struct {
	From string
	To   string
}

// MonthlyOverview is the printable form of an employee month.
type MonthlyOverview struct {
	EmployeeID   string
	Year         int
	Month        time.Month
	Holidays     []HolidayRow
	Leaves       []LeaveRow
	NotClockedIn []string
	GeneratedAt  time.Time
}

// WriteMonthlyOverview renders o as a single A4 document.
func WriteMonthlyOverview(w io.Writer, o MonthlyOverview) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Monthly overview %s %d", o.Month, o.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Monthly Overview - %s %d", o.Month, o.Year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", o.EmployeeID))
	pdf.Ln(6)
	if !o.GeneratedAt.IsZero() {
		pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", o.GeneratedAt.Format("2006-01-02 15:04")))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, fmt.Sprintf("Holidays (%d)", len(o.Holidays)))
	if len(o.Holidays) == 0 {
		emptyLine(pdf)
	}
	for _, h := range o.Holidays {
		pdf.CellFormat(80, 7, h.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, h.From, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, h.To, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, fmt.Sprintf("Approved leaves (%d)", len(o.Leaves)))
	if len(o.Leaves) == 0 {
		emptyLine(pdf)
	}
	for _, l := range o.Leaves {
		pdf.CellFormat(40, 7, l.From, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, l.To, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, fmt.Sprintf("Not clocked in (%d)", len(o.NotClockedIn)))
	if len(o.NotClockedIn) == 0 {
		emptyLine(pdf)
	}
	for i, d := range o.NotClockedIn {
		// four dates per row
		ln := 0
		if i%4 == 3 || i == len(o.NotClockedIn)-1 {
			ln = 1
		}
		pdf.CellFormat(40, 7, d, "1", ln, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render monthly overview: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func emptyLine(pdf *gofpdf.Fpdf) {
	pdf.Cell(0, 7, "None")
	pdf.Ln(7)
}
