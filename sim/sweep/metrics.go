package sweep

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inference-sim/fcfs-sim/sim"
)

// Metrics holds the Prometheus instruments updated during a sweep.
type Metrics struct {
	// TrialsCompleted counts trials that ran to completion.
	TrialsCompleted prometheus.Counter
	// TrialsFailed counts trials that did not produce a result, by reason.
	TrialsFailed *prometheus.CounterVec
	// ExportErrors counts results the export collaborator rejected.
	ExportErrors prometheus.Counter
	// TrialWallSeconds observes the wall-clock runtime of each trial.
	TrialWallSeconds prometheus.Histogram
	// MeanQueueSeconds is the simulated mean queue time per grid point.
	MeanQueueSeconds *prometheus.GaugeVec
	// CustomersSimulated counts every customer record produced.
	CustomersSimulated prometheus.Counter
}

// NewMetrics registers the sweep instruments on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TrialsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fcfs_sim",
			Name:      "trials_completed_total",
			Help:      "Number of trials that ran to completion",
		}),
		TrialsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fcfs_sim",
			Name:      "trials_failed_total",
			Help:      "Number of trials that produced no result",
		}, []string{"reason"}),
		ExportErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fcfs_sim",
			Name:      "export_errors_total",
			Help:      "Number of trial results the exporter failed to write",
		}),
		TrialWallSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fcfs_sim",
			Name:      "trial_wall_seconds",
			Help:      "Wall-clock runtime of a single trial",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		MeanQueueSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fcfs_sim",
			Name:      "mean_queue_seconds",
			Help:      "Simulated mean queue time per parameter combination",
		}, []string{"serve_time", "servers", "window"}),
		CustomersSimulated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fcfs_sim",
			Name:      "customers_simulated_total",
			Help:      "Number of customer records produced across all trials",
		}),
	}
}

func (m *Metrics) observeTrial(res *sim.TrialResult, wallSeconds float64) {
	if m == nil {
		return
	}
	m.TrialsCompleted.Inc()
	m.TrialWallSeconds.Observe(wallSeconds)
	m.CustomersSimulated.Add(float64(len(res.Records)))
	m.MeanQueueSeconds.WithLabelValues(paramLabels(res.Params)...).Set(res.Summary.MeanQueueTime)
}

func (m *Metrics) observeFailure(reason string) {
	if m == nil {
		return
	}
	m.TrialsFailed.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeExportError() {
	if m == nil {
		return
	}
	m.ExportErrors.Inc()
}

func paramLabels(p sim.SimulationParameters) []string {
	return []string{
		strconv.FormatFloat(p.ServeTime, 'g', -1, 64),
		strconv.Itoa(p.ServerCount),
		strconv.FormatFloat(p.WindowDuration, 'g', -1, 64),
	}
}
