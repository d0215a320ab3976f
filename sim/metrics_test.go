package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsWithQueueTimes(queue []float64, gaps []float64) []CustomerRecord {
	out := make([]CustomerRecord, len(queue))
	for i := range queue {
		out[i] = CustomerRecord{ID: i, QueueTime: queue[i], Interarrival: gaps[i]}
	}
	return out
}

func TestSummarize_MeanAndPopulationStdDev(t *testing.T) {
	// GIVEN queue times [0, 7, 0] and gaps [5, 3, 20]
	recs := recordsWithQueueTimes([]float64{0, 7, 0}, []float64{5, 3, 20})

	// WHEN summarized
	s, err := Summarize(recs)
	require.NoError(t, err)

	// THEN mean ≈ 2.333 and population std-dev ≈ 3.299
	assert.InDelta(t, 2.333, s.MeanQueueTime, 1e-3)
	assert.InDelta(t, 3.299, s.StdQueueTime, 1e-3)
	assert.InDelta(t, 28.0/3.0, s.MeanInterarrival, 1e-12)
	assert.Equal(t, 7.0, s.MaxQueueTime)
	assert.Equal(t, 1, s.CustomersWaited)
	assert.Equal(t, 3, s.Customers)
}

func TestSummarize_DoesNotReorderRecords(t *testing.T) {
	recs := recordsWithQueueTimes([]float64{9, 1, 5}, []float64{1, 1, 1})
	_, err := Summarize(recs)
	require.NoError(t, err)
	assert.Equal(t, 9.0, recs[0].QueueTime)
}

func TestSummarize_P95(t *testing.T) {
	// GIVEN queue times 1..100
	queue := make([]float64, 100)
	gaps := make([]float64, 100)
	for i := range queue {
		queue[i] = float64(i + 1)
		gaps[i] = 1
	}
	s, err := Summarize(recordsWithQueueTimes(queue, gaps))
	require.NoError(t, err)

	// THEN the empirical 95th percentile is 95
	assert.Equal(t, 95.0, s.P95QueueTime)
	assert.Equal(t, 100.0, s.MaxQueueTime)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}
