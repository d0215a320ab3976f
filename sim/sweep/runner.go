package sweep

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/fcfs-sim/sim"
	"github.com/inference-sim/fcfs-sim/sim/trace"
)

// Exporter receives finished trial results in grid order.
type Exporter interface {
	Export(res *sim.TrialResult) error
}

// Config controls how a sweep executes.
type Config struct {
	Seed    int64             // master seed; each trial derives its own from it
	Workers int               // concurrent trials; <= 0 means GOMAXPROCS
	Trace   trace.TraceConfig // per-trial event tracing
}

// Failure is a grid point that produced no result.
type Failure struct {
	Params sim.SimulationParameters
	Err    error
}

// Report collects the outcome of a sweep. Results and Failures are in grid order.
type Report struct {
	Results      []*sim.TrialResult
	Failures     []Failure
	ExportErrors int
	Elapsed      time.Duration
}

// trialFunc runs one grid point. sim.RunTrial outside tests.
type trialFunc func(sim.SimulationParameters, *rand.Rand, trace.TraceConfig) (*sim.TrialResult, error)

// Runner executes a Grid.
type Runner struct {
	grid     Grid
	cfg      Config
	exporter Exporter
	metrics  *Metrics
	runTrial trialFunc
}

// NewRunner creates a Runner. exporter and metrics may be nil.
func NewRunner(grid Grid, cfg Config, exporter Exporter, metrics *Metrics) *Runner {
	return &Runner{grid: grid, cfg: cfg, exporter: exporter, metrics: metrics, runTrial: sim.RunTrial}
}

// Run executes every grid point. Trials run concurrently, but results reach
// the exporter strictly in grid order once all trials are done.
//
// Configuration errors skip only the affected point and are listed in the
// Report. A SchedulingInvariantViolation aborts the whole sweep with an error,
// as does ctx being cancelled.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	combos := r.grid.Combinations()
	if len(combos) == 0 {
		return nil, &sim.ConfigurationError{Field: "grid", Value: 0, Reason: "sweep has no parameter combinations"}
	}

	seeds := deriveSeeds(sim.NewPartitionedRNG(sim.NewSimulationKey(r.cfg.Seed)), combos)

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logrus.Infof("Starting sweep: %d trials, %d workers, seed=%d", len(combos), workers, r.cfg.Seed)

	results := make([]*sim.TrialResult, len(combos))
	errs := make([]error, len(combos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range combos {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			trialStart := time.Now()
			res, err := r.runTrial(p, rand.New(rand.NewSource(seeds[i])), r.cfg.Trace)
			if err != nil {
				if sim.IsInvariantViolation(err) {
					r.metrics.observeFailure("invariant")
					logrus.Errorf("Trial %s broke an engine invariant: %v", p, err)
					return fmt.Errorf("trial %s: %w", p, err)
				}
				errs[i] = err
				r.metrics.observeFailure(failureReason(err))
				logrus.WithFields(logrus.Fields{
					"serve_time": p.ServeTime,
					"servers":    p.ServerCount,
					"customers":  p.CustomerCount,
					"window":     p.WindowDuration,
				}).Warnf("Skipping trial: %v", err)
				return nil
			}
			res.Seed = seeds[i]
			results[i] = res

			wall := time.Since(trialStart)
			r.metrics.observeTrial(res, wall.Seconds())
			logrus.Infof("Trial %s done in %.2fs: mean queue %.3fs", p, wall.Seconds(), res.Summary.MeanQueueTime)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{}
	for i, p := range combos {
		if errs[i] != nil {
			report.Failures = append(report.Failures, Failure{Params: p, Err: errs[i]})
			continue
		}
		res := results[i]
		report.Results = append(report.Results, res)
		if r.exporter == nil {
			continue
		}
		if err := r.exporter.Export(res); err != nil {
			report.ExportErrors++
			r.metrics.observeExportError()
			logrus.Errorf("Exporting trial %s: %v", p, err)
		}
	}
	report.Elapsed = time.Since(start)
	logrus.Infof("Sweep finished in %.2fs: %d ok, %d failed, %d export errors",
		report.Elapsed.Seconds(), len(report.Results), len(report.Failures), report.ExportErrors)
	return report, nil
}

// deriveSeeds returns one seed per grid point. PartitionedRNG is
// single-goroutine, so this runs before fanning out. A point repeated in the
// grid gets its occurrence number mixed in, keeping repeats independent while
// the first occurrence keeps the seed it would have alone.
func deriveSeeds(rng *sim.PartitionedRNG, combos []sim.SimulationParameters) []int64 {
	seen := make(map[string]int, len(combos))
	seeds := make([]int64, len(combos))
	for i, p := range combos {
		name := sim.SubsystemTrial(p)
		n := seen[name]
		seen[name]++
		if n > 0 {
			name = fmt.Sprintf("%s#%d", name, n)
		}
		seeds[i] = rng.DeriveSeed(name)
	}
	logrus.Debugf("Derived %d trial seeds from key %d", len(seeds), rng.Key())
	return seeds
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, sim.ErrInvalidConfiguration):
		return "configuration"
	case errors.Is(err, sim.ErrEmptyDataset):
		return "empty_dataset"
	default:
		return "other"
	}
}
