package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/fcfs-sim/sim"
)

// SummaryIndexFile is the per-workbook index with one summary line per sheet.
const SummaryIndexFile = "summary.csv"

// CSVWorkbook treats a directory as a workbook: every sheet is written to
// <name>.csv and summarized in summary.csv. Reopening an existing directory
// appends to it. Not safe for concurrent use.
type CSVWorkbook struct {
	dir   string
	index *os.File
	w     *csv.Writer
}

// NewCSVWorkbook opens (or creates) the workbook directory dir.
func NewCSVWorkbook(dir string) (*CSVWorkbook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workbook dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, SummaryIndexFile), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening summary index: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat summary index: %w", err)
	}

	wb := &CSVWorkbook{dir: dir, index: f, w: csv.NewWriter(f)}
	if info.Size() == 0 {
		header := append([]string{"Sheet", "Seed", "Customers"}, SummaryLabels()...)
		if err := wb.w.Write(header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("writing summary header: %w", err)
		}
	}
	return wb, nil
}

// Export writes res as a new sheet.
func (wb *CSVWorkbook) Export(res *sim.TrialResult) error {
	return wb.WriteSheet(NewSheet(res))
}

// WriteSheet writes the sheet's dataset file and appends its summary line.
func (wb *CSVWorkbook) WriteSheet(sheet *Sheet) error {
	path := filepath.Join(wb.dir, sheet.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet.Name, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing sheet %s: %w", sheet.Name, err)
	}
	for _, r := range sheet.Rows {
		rec := []string{strconv.Itoa(r.ID), formatFloat(r.ArrivalTime), formatFloat(r.QueueTime), formatFloat(r.Interarrival)}
		if err := w.Write(rec); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing sheet %s: %w", sheet.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing sheet %s: %w", sheet.Name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing sheet %s: %w", sheet.Name, err)
	}

	line := []string{sheet.Name, "", strconv.Itoa(len(sheet.Rows))}
	if sheet.Result != nil {
		line[1] = strconv.FormatInt(sheet.Result.Seed, 10)
	}
	for _, c := range sheet.Summary {
		line = append(line, formatFloat(c.Value))
	}
	if err := wb.w.Write(line); err != nil {
		return fmt.Errorf("indexing sheet %s: %w", sheet.Name, err)
	}
	wb.w.Flush()
	if err := wb.w.Error(); err != nil {
		return fmt.Errorf("indexing sheet %s: %w", sheet.Name, err)
	}
	logrus.Debugf("Wrote sheet %s (%d rows) to %s", sheet.Name, len(sheet.Rows), path)
	return nil
}

// Close flushes and closes the summary index.
func (wb *CSVWorkbook) Close() error {
	wb.w.Flush()
	if err := wb.w.Error(); err != nil {
		_ = wb.index.Close()
		return err
	}
	return wb.index.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
