package export

import (
	"errors"

	"github.com/inference-sim/fcfs-sim/sim"
)

// SheetWriter is implemented by exporters that can take a prebuilt Sheet,
// letting several backends share one sheet name for the same trial.
type SheetWriter interface {
	WriteSheet(sheet *Sheet) error
}

// Multi fans every result out to each exporter in turn.
type Multi []Exporter

// Export builds one Sheet for res, hands it to every exporter and joins their errors.
func (m Multi) Export(res *sim.TrialResult) error {
	sheet := NewSheet(res)
	var errs []error
	for _, e := range m {
		var err error
		if sw, ok := e.(SheetWriter); ok {
			err = sw.WriteSheet(sheet)
		} else {
			err = e.Export(res)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every exporter and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, e := range m {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
