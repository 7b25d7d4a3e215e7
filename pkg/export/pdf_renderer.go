package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/69GliTcH/SimpliFin/pkg/spending"
	"github.com/phpdave11/gofpdf"
)

// Report is the input of the PDF renderer: the filtered records plus the
// human-readable description of the filter that produced them.
type Report struct {
	Records     []spending.Record
	DateRange   string
	Category    string
	Currency    string
	GeneratedAt time.Time
}

const maxNameLength = 20

// RenderPDF builds a spending report: title, the applied filters, a striped
// record table, and the filtered totals.
func RenderPDF(report Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(120, 120, 120)
		footer := fmt.Sprintf("Generated %s  -  Page %d",
			report.GeneratedAt.Format("Jan 2, 2006"), pdf.PageNo())
		pdf.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Spending Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	dateRange := report.DateRange
	if dateRange == "" {
		dateRange = "All time"
	}
	category := report.Category
	if category == "" {
		category = "All categories"
	}
	pdf.Cell(0, 6, "Period: "+dateRange)
	pdf.Ln(5)
	pdf.Cell(0, 6, "Category: "+category)
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Records: %d", len(report.Records)))
	pdf.Ln(10)

	colW := []float64{72, 34, 40, 36}
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(59, 130, 246)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(colW[0], 8, "Name", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[1], 8, "Amount", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[2], 8, "Category", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[3], 8, "Date", "1", 1, "C", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(30, 30, 30)
	}
	writeHeader()

	var total float64
	for i, record := range report.Records {
		if pdf.GetY() > 265 {
			pdf.AddPage()
			writeHeader()
		}

		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(240, 240, 240)
		}

		date := "-"
		if record.HasValidTimestamp() {
			date = record.CreatedAt.Format("01/02/2006")
		}

		pdf.CellFormat(colW[0], 7, truncateName(record.Name), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colW[1], 7, currencyLabel(report.Currency)+formatAmount(record.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colW[2], 7, string(record.DisplayCategory()), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colW[3], 7, date, "1", 1, "C", fill, 0, "")

		total += record.Amount
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(20, 20, 20)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s%s", currencyLabel(report.Currency), formatAmount(total)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxNameLength {
		return name
	}
	return string(runes[:maxNameLength-3]) + "..."
}

// currencyLabel maps currency symbols outside the core font's codepage to an
// ASCII label.
func currencyLabel(currency string) string {
	switch currency {
	case "", "₹":
		return "Rs. "
	case "$", "€", "£":
		return currency
	default:
		return currency + " "
	}
}
