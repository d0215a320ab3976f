// Package export writes finished trials to storage. Each trial becomes a
// Sheet: its per-customer dataset plus a labelled summary block.
package export

import (
	"github.com/rs/xid"

	"github.com/inference-sim/fcfs-sim/sim"
)

// Summary block labels, in display order.
const (
	LabelAvgQueueTime = "Avg. Queue Time"
	LabelServers      = "# of Servers"
	LabelServeTime    = "Serve Time (s)"
	LabelLunchTime    = "Lunch Time (hrs)"
	LabelMeanTBA      = "Mean TBA (s)"
	LabelSpread       = "Spread"
	LabelP95QueueTime = "P95 Queue Time (s)"
	LabelMaxQueueTime = "Max Queue Time (s)"
	LabelErlangQueue  = "M/D/c Queue Time (s)"
	LabelUtilization  = "Utilization"
)

// Columns is the header of a sheet's dataset.
var Columns = []string{"ID #", "Arrival Time", "Queue Time", "Inter-Arrival"}

// Row is one customer line of a sheet.
type Row struct {
	ID           int
	ArrivalTime  float64
	QueueTime    float64
	Interarrival float64
}

// Cell is one labelled summary value.
type Cell struct {
	Label string
	Value float64
}

// Sheet is the export view of one TrialResult.
type Sheet struct {
	Name    string
	Rows    []Row
	Summary []Cell
	Result  *sim.TrialResult
}

// Exporter is implemented by every storage backend in this package.
type Exporter interface {
	Export(res *sim.TrialResult) error
	Close() error
}

// NewSheetName returns a unique, time-ordered sheet name.
func NewSheetName() string {
	return xid.New().String()
}

// NewSheet builds the export view of res under a fresh sheet name.
func NewSheet(res *sim.TrialResult) *Sheet {
	rows := make([]Row, len(res.Records))
	for i, r := range res.Records {
		rows[i] = Row{ID: r.ID, ArrivalTime: r.ArrivalTime, QueueTime: r.QueueTime, Interarrival: r.Interarrival}
	}
	return &Sheet{
		Name:    NewSheetName(),
		Rows:    rows,
		Summary: summaryBlock(res),
		Result:  res,
	}
}

func summaryBlock(res *sim.TrialResult) []Cell {
	return []Cell{
		{LabelAvgQueueTime, res.Summary.MeanQueueTime},
		{LabelServers, float64(res.Params.ServerCount)},
		{LabelServeTime, res.Params.ServeTime},
		{LabelLunchTime, res.Params.LunchTimeHours()},
		{LabelMeanTBA, res.Summary.MeanInterarrival},
		{LabelSpread, res.Summary.StdQueueTime},
		{LabelP95QueueTime, res.Summary.P95QueueTime},
		{LabelMaxQueueTime, res.Summary.MaxQueueTime},
		{LabelErlangQueue, res.Reference.MDcQueueTime},
		{LabelUtilization, res.Utilization},
	}
}

// SummaryLabels returns the summary block labels in display order.
func SummaryLabels() []string {
	block := summaryBlock(&sim.TrialResult{})
	labels := make([]string, len(block))
	for i, c := range block {
		labels[i] = c.Label
	}
	return labels
}
