// sim/metrics.go
package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary is the reduction of one trial's CustomerRecords.
type Summary struct {
	Customers        int
	MeanQueueTime    float64
	StdQueueTime     float64 // population standard deviation ("Spread")
	MaxQueueTime     float64
	P95QueueTime     float64
	CustomersWaited  int
	MeanInterarrival float64 // "Mean TBA"
}

// Summarize computes queue-time and interarrival statistics over records.
// Returns ErrEmptyDataset when records is empty.
func Summarize(records []CustomerRecord) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, fmt.Errorf("summarize: %w", ErrEmptyDataset)
	}

	queue := make([]float64, len(records))
	gaps := make([]float64, len(records))
	s := Summary{Customers: len(records)}
	for i, r := range records {
		queue[i] = r.QueueTime
		gaps[i] = r.Interarrival
		if r.QueueTime > 0 {
			s.CustomersWaited++
		}
	}

	s.MeanQueueTime, s.StdQueueTime = stat.PopMeanStdDev(queue, nil)
	s.MeanInterarrival = stat.Mean(gaps, nil)

	sort.Float64s(queue)
	s.MaxQueueTime = queue[len(queue)-1]
	s.P95QueueTime = stat.Quantile(0.95, stat.Empirical, queue, nil)
	return s, nil
}
