package cli_test

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abdidvp/rulecheck/internal/domain"
)

const mixedResults = `{"filename":"loans.csv","row_count":2,"results":[
	{"Status":"Valid","firstColumn":1},
	{"Status":"Invalid","TransactionID":2,"Errors":["amount above reporting threshold"]}]}`

func TestValidate_RendersInvalidRows(t *testing.T) {
	dir := newProject(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate", r.URL.Path)
		w.Write([]byte(mixedResults))
	})
	csv := writeCSV(t, dir)

	out, err := run(t, "validate", csv, "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction ID:")
	assert.Contains(t, out, "amount above reporting threshold")
	assert.Contains(t, out, "Validation Statistics")
	assert.NotContains(t, out, "First Column:")
}

func TestValidate_JSON(t *testing.T) {
	dir := newProject(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mixedResults))
	})
	csv := writeCSV(t, dir)

	out, err := run(t, "validate", csv, "--config", dir, "--json")
	require.NoError(t, err)

	var got struct {
		Report domain.ValidationReport `json:"report"`
		Status domain.WorkflowStatus   `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.ValidationSummary{Valid: 1, Invalid: 1, Total: 2}, got.Report.Summary)
	assert.Equal(t, "loans.csv", got.Report.Filename)
	require.NotNil(t, got.Report.RowCount)
	assert.Equal(t, 2, *got.Report.RowCount)
	assert.Len(t, got.Report.Rows, 2)
}

func TestValidate_CIFailsOnInvalidRows(t *testing.T) {
	dir := newProject(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mixedResults))
	})
	csv := writeCSV(t, dir)

	_, err := run(t, "validate", csv, "--config", dir, "--ci")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 rows are invalid")
}

func TestValidate_CIPassesWhenAllValid(t *testing.T) {
	dir := newProject(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"Status":"Valid","firstColumn":1}]}`))
	})
	csv := writeCSV(t, dir)

	out, err := run(t, "validate", csv, "--config", dir, "--ci")
	require.NoError(t, err)
	assert.Contains(t, out, "No invalid rows.")
}

func TestValidate_ServiceFailure(t *testing.T) {
	dir := newProject(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	csv := writeCSV(t, dir)

	_, err := run(t, "validate", csv, "--config", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_Export(t *testing.T) {
	dir := newProject(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mixedResults))
	})
	csv := writeCSV(t, dir)
	dest := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := run(t, "validate", csv, "--config", dir, "--export", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported report to")

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Invalid Rows")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestValidate_RejectsPDF(t *testing.T) {
	dir := newProject(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a rejected file")
	})
	pdf := writePDF(t, dir)

	_, err := run(t, "validate", pdf, "--config", dir)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
}
