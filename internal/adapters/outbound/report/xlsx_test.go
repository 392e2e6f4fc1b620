package report_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abdidvp/rulecheck/internal/adapters/outbound/report"
	"github.com/abdidvp/rulecheck/internal/domain"
)

func TestXLSXExporter_Export(t *testing.T) {
	rows := domain.NormalizeAll([]domain.RawRow{
		{"Status": "Valid", "firstColumn": 1},
		{"Status": "Invalid", "TransactionID": "T-2", "Errors": []any{"bad date", "amount too high"}},
		{"Status": "Invalid", "Message": "row skipped"},
	})
	count := 3
	rep := &domain.ValidationReport{
		File:     "/data/loans.csv",
		Filename: "loans.csv",
		RowCount: &count,
		Rows:     rows,
		Summary:  domain.Summarize(rows),
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, report.NewXLSXExporter().Export(rep, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SheetInvalid, report.SheetSummary}, f.GetSheetList())

	invalid, err := f.GetRows(report.SheetInvalid)
	require.NoError(t, err)
	require.Len(t, invalid, 3, "header plus two invalid rows")
	assert.Equal(t, []string{"ID", "ID Field", "Status", "Errors", "Message"}, invalid[0])
	assert.Equal(t, "T-2", invalid[1][0])
	assert.Equal(t, domain.FieldTransactionID, invalid[1][1])
	assert.Equal(t, "bad date\namount too high", invalid[1][3])
	assert.Equal(t, "", invalid[2][0])
	assert.Equal(t, "row skipped", invalid[2][4])

	summary, err := f.GetRows(report.SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"File", "loans.csv"}, summary[0])
	assert.Equal(t, []string{"Total", "3"}, summary[1])
	assert.Equal(t, []string{"Invalid", "2"}, summary[3])
	assert.Equal(t, []string{"Reported rows", "3"}, summary[5])
}

func TestXLSXExporter_BadPath(t *testing.T) {
	rep := &domain.ValidationReport{Rows: []domain.ValidationRow{}}
	err := report.NewXLSXExporter().Export(rep, filepath.Join(t.TempDir(), "missing", "out.xlsx"))
	assert.Error(t, err)
}
