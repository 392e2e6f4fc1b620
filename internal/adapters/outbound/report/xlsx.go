package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abdidvp/rulecheck/internal/domain"
)

const (
	SheetInvalid = "Invalid Rows"
	SheetSummary = "Summary"
)

var invalidHeaders = []string{"ID", "ID Field", "Status", "Errors", "Message"}

// XLSXExporter writes a validation report to an Excel workbook.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes the invalid rows and the summary counts to path.
func (e *XLSXExporter) Export(report *domain.ValidationReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetInvalid)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	lines := [][]any{make([]any, len(invalidHeaders))}
	for i, h := range invalidHeaders {
		lines[0][i] = h
	}
	for _, r := range domain.InvalidRows(report.Rows) {
		lines = append(lines, []any{
			r.ID.String(),
			r.IDField,
			string(r.Status),
			strings.Join(r.Errors, "\n"),
			r.Message,
		})
	}
	if err := writeRows(f, SheetInvalid, lines); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(invalidHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetInvalid, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", SheetInvalid, err)
	}
	if err := setWidths(f, SheetInvalid, map[string]float64{"A": 15, "B": 15, "C": 10, "D": 50, "E": 30}); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	name := report.Filename
	if name == "" {
		name = report.File
	}
	summary := [][]any{
		{"File", name},
		{"Total", report.Summary.Total},
		{"Valid", report.Summary.Valid},
		{"Invalid", report.Summary.Invalid},
		{"Unknown", report.Summary.Unknown},
	}
	if report.RowCount != nil {
		summary = append(summary, []any{"Reported rows", *report.RowCount})
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(summary)), headerStyle); err != nil {
		return fmt.Errorf("styling %s labels: %w", SheetSummary, err)
	}
	if err := setWidths(f, SheetSummary, map[string]float64{"A": 18, "B": 30}); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// writeRows writes lines to sheet starting at A1, one slice per row.
func writeRows(f *excelize.File, sheet string, lines [][]any) error {
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, widths map[string]float64) error {
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("sizing %s column %s: %w", sheet, col, err)
		}
	}
	return nil
}
