package export

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/inference-sim/fcfs-sim/sim"
)

func cellFloat(t *testing.T, f *excelize.File, sheet, cell string) float64 {
	t.Helper()
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	v, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err, "cell %s!%s = %q", sheet, cell, raw)
	return v
}

func TestWorkbook_SheetLayout(t *testing.T) {
	// GIVEN a new workbook holding the scenario trial
	path := filepath.Join(t.TempDir(), "lunch.xlsx")
	wb, err := NewWorkbook(path)
	require.NoError(t, err)
	sheet := NewSheet(scenarioResult(t))
	require.NoError(t, wb.WriteSheet(sheet))
	require.NoError(t, wb.Close())

	// WHEN the saved file is reopened
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// THEN the trial is the only sheet
	assert.Equal(t, []string{sheet.Name}, f.GetSheetList())

	// AND the dataset starts at A1
	header, err := f.GetRows(sheet.Name)
	require.NoError(t, err)
	assert.Equal(t, Columns, header[0][:4])
	assert.Equal(t, 8.0, cellFloat(t, f, sheet.Name, "B3"))
	assert.Equal(t, 7.0, cellFloat(t, f, sheet.Name, "C3"))

	// AND the summary block sits at H2:I12
	title, err := f.GetCellValue(sheet.Name, "H2")
	require.NoError(t, err)
	assert.Equal(t, "Summary", title)
	for i, label := range SummaryLabels() {
		got, err := f.GetCellValue(sheet.Name, "H"+strconv.Itoa(3+i))
		require.NoError(t, err)
		assert.Equal(t, label, got)
	}
	assert.InDelta(t, 7.0/3.0, cellFloat(t, f, sheet.Name, "I3"), 1e-9)
	assert.Equal(t, 1.0, cellFloat(t, f, sheet.Name, "I4"))
	assert.Equal(t, 10.0, cellFloat(t, f, sheet.Name, "I5"))
	assert.Equal(t, 0.5, cellFloat(t, f, sheet.Name, "I6"))
}

func TestWorkbook_Reopen_AddsSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lunch.xlsx")
	var names []string
	for i := 0; i < 2; i++ {
		wb, err := NewWorkbook(path)
		require.NoError(t, err)
		sheet := NewSheet(randomResult(t, 20))
		names = append(names, sheet.Name)
		require.NoError(t, wb.WriteSheet(sheet))
		require.NoError(t, wb.Close())
	}

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, names, f.GetSheetList())
}

func TestWorkbook_UnstableReferenceWrittenAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lunch.xlsx")
	wb, err := NewWorkbook(path)
	require.NoError(t, err)
	res := scenarioResult(t)
	res.Reference = sim.ErlangC(1, 1, 10)
	sheet := NewSheet(res)
	require.NoError(t, wb.WriteSheet(sheet))
	require.NoError(t, wb.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetCellValue(sheet.Name, "I11")
	require.NoError(t, err)
	assert.Equal(t, "unstable", got)
}

func TestWorkbook_WriteAfterClose(t *testing.T) {
	wb, err := NewWorkbook(filepath.Join(t.TempDir(), "lunch.xlsx"))
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	assert.Error(t, wb.Export(scenarioResult(t)))
	assert.NoError(t, wb.Close())
}
