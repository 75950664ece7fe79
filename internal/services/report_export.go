package services

import (
	"fmt"
	"io"

	"fintrack/internal/money"

	"github.com/go-pdf/fpdf"
	"github.com/gocarina/gocsv"
)

// Report section names used in the CSV export.
const (
	SectionTotals   = "totals"
	SectionExpenses = "expenses"
	SectionGains    = "gains"
)

// SummaryRow is one line of the CSV export.
type SummaryRow struct {
	Section  string `csv:"section"`
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
}

// SummaryRows flattens a summary into CSV rows: the totals first, then
// expenses and gains per category.
func SummaryRows(summary *Summary) []SummaryRow {
	rows := []SummaryRow{
		{Section: SectionTotals, Category: "total_gains", Amount: money.Format(summary.TotalGains)},
		{Section: SectionTotals, Category: "total_expenses", Amount: money.Format(summary.TotalExpenses)},
		{Section: SectionTotals, Category: "net_balance", Amount: money.Format(summary.NetBalance)},
	}
	for _, e := range summary.ExpensesByCategory {
		rows = append(rows, SummaryRow{Section: SectionExpenses, Category: e.Category, Amount: money.Format(e.Amount)})
	}
	for _, g := range summary.GainsByCategory {
		rows = append(rows, SummaryRow{Section: SectionGains, Category: g.Category, Amount: money.Format(g.Amount)})
	}
	return rows
}

// ExportCSV writes summary as CSV to w.
func (s *reportService) ExportCSV(summary *Summary, w io.Writer) error {
	if summary == nil {
		return invalid("summary is required")
	}
	rows := SummaryRows(summary)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ExportPDF renders summary as a one-page PDF document to w.
func (s *reportService) ExportPDF(summary *Summary, w io.Writer) error {
	if summary == nil {
		return invalid("summary is required")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Financial Summary", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Generated at: "+s.now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Period: %s to %s",
		summary.StartDate.Format("2006-01-02"), summary.EndDate.Format("2006-01-02")), "", 1, "C", false, 0, "")
	if summary.Category != "" {
		pdf.CellFormat(0, 5, tr("Category: "+summary.Category), "", 1, "C", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Totals:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 128, 0)
	pdf.CellFormat(0, 7, "Total gains: "+money.Format(summary.TotalGains), "", 1, "L", false, 0, "")
	pdf.SetTextColor(255, 0, 0)
	pdf.CellFormat(0, 7, "Total expenses: "+money.Format(summary.TotalExpenses), "", 1, "L", false, 0, "")

	switch {
	case summary.NetBalance > 0:
		pdf.SetTextColor(0, 128, 0)
	case summary.NetBalance < 0:
		pdf.SetTextColor(255, 0, 0)
	default:
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 10, "Net balance: "+money.Format(summary.NetBalance), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(5)

	writeSection := func(title, empty string, amounts []SummaryRow) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		if len(amounts) == 0 {
			pdf.CellFormat(0, 7, empty, "", 1, "L", false, 0, "")
		}
		for _, a := range amounts {
			pdf.CellFormat(0, 7, tr("- "+a.Category+": "+a.Amount), "", 1, "L", false, 0, "")
		}
		pdf.Ln(5)
	}

	var expenses, gains []SummaryRow
	for _, row := range SummaryRows(summary) {
		switch row.Section {
		case SectionExpenses:
			expenses = append(expenses, row)
		case SectionGains:
			gains = append(gains, row)
		}
	}
	writeSection("Expenses by category:", "No expenses to display.", expenses)
	writeSection("Gains by category:", "No gains to display.", gains)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF: %w", err)
	}
	return nil
}
