package export

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
	"github.com/xuri/excelize/v2"

	"github.com/inference-sim/fcfs-sim/sim"
)

// Summary block placement: a "Summary" title in H2, then one label/value
// pair per row from H3/I3 down.
const (
	summaryTitleCell = "H2"
	summaryLabelCol  = 8 // H
	summaryFirstRow  = 3
)

// excelize's default sheet in a new file; replaced by the first trial sheet.
const defaultSheet = "Sheet1"

// Workbook writes every trial as a sheet of one .xlsx file. An existing file
// is opened and extended. The file is saved on Close and at process exit.
type Workbook struct {
	mu     sync.Mutex
	path   string
	file   *excelize.File
	fresh  bool // file still holds only defaultSheet
	closed bool
	bold   int
}

// NewWorkbook opens the workbook at path, creating it on first Close if absent.
func NewWorkbook(path string) (*Workbook, error) {
	wb := &Workbook{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		wb.file = excelize.NewFile()
		wb.fresh = true
	} else {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening workbook %s: %w", path, err)
		}
		wb.file = f
	}

	bold, err := wb.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = wb.file.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	wb.bold = bold

	atexit.Register(func() {
		if err := wb.Close(); err != nil {
			logrus.Errorf("Saving %s at exit: %v", path, err)
		}
	})
	return wb, nil
}

// Export writes res as a new sheet.
func (wb *Workbook) Export(res *sim.TrialResult) error {
	return wb.WriteSheet(NewSheet(res))
}

// WriteSheet adds the sheet's dataset from A1 and its summary block from H2.
func (wb *Workbook) WriteSheet(sheet *Sheet) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.closed {
		return fmt.Errorf("workbook %s is closed", wb.path)
	}

	f, name := wb.file, sheet.Name
	if wb.fresh {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("naming sheet %s: %w", name, err)
		}
		wb.fresh = false
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("adding sheet %s: %w", name, err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing sheet %s: %w", name, err)
	}
	if err := f.SetCellStyle(name, "A1", "D1", wb.bold); err != nil {
		return fmt.Errorf("styling sheet %s: %w", name, err)
	}
	for i, r := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.ID, r.ArrivalTime, r.QueueTime, r.Interarrival}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing sheet %s row %d: %w", name, i, err)
		}
	}

	if err := f.SetCellValue(name, summaryTitleCell, "Summary"); err != nil {
		return fmt.Errorf("writing summary of %s: %w", name, err)
	}
	if err := f.SetCellStyle(name, summaryTitleCell, summaryTitleCell, wb.bold); err != nil {
		return fmt.Errorf("styling summary of %s: %w", name, err)
	}
	for i, c := range sheet.Summary {
		cell, err := excelize.CoordinatesToCellName(summaryLabelCol, summaryFirstRow+i)
		if err != nil {
			return err
		}
		row := []any{c.Label, cellValue(c.Value)}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing summary of %s: %w", name, err)
		}
	}

	// Fixed widths stand in for autofit, which needs a spreadsheet engine.
	if err := f.SetColWidth(name, "A", "D", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(name, "H", "H", 22); err != nil {
		return err
	}
	logrus.Debugf("Added sheet %s (%d rows) to %s", name, len(sheet.Rows), wb.path)
	return nil
}

// Close saves the workbook. Further calls are no-ops.
func (wb *Workbook) Close() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.closed {
		return nil
	}
	wb.closed = true
	saveErr := wb.file.SaveAs(wb.path)
	if err := wb.file.Close(); err != nil && saveErr == nil {
		return err
	}
	if saveErr != nil {
		return fmt.Errorf("saving workbook %s: %w", wb.path, saveErr)
	}
	return nil
}

// cellValue keeps non-finite values out of numeric cells.
func cellValue(v float64) any {
	switch {
	case math.IsNaN(v):
		return "n/a"
	case math.IsInf(v, 0):
		return "unstable"
	default:
		return v
	}
}
