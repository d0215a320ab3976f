package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/fcfs-sim/sim/trace"
)

// CustomerRecord is the outcome for one customer. QueueTime is final once the
// customer acquires a server; the record is not modified after the trial ends.
type CustomerRecord struct {
	ID              int
	ArrivalTime     float64
	QueueTime       float64
	ServiceStart    float64 // time the customer acquired a server
	ServiceDuration float64
	Interarrival    float64 // the gap sampled for this customer
}

// TrialResult is everything a finished trial hands to its caller.
type TrialResult struct {
	Params      SimulationParameters
	Seed        int64
	Records     []CustomerRecord
	Summary     Summary
	Reference   ErlangEstimate
	Makespan    float64 // time of the last service completion
	Utilization float64 // busy server-seconds / (servers × makespan)
	Trace       *trace.TrialTrace
}

// Trial is one simulation run for a fixed parameter combination.
// A Trial is single-use and not safe for concurrent use.
type Trial struct {
	Params SimulationParameters
	Clock  float64

	events    EventQueue
	pool      *ServerPool
	schedule  ArrivalSchedule
	records   []CustomerRecord
	granted   []bool
	completed int
	trace     *trace.TrialTrace
	ran       bool
}

// NewTrial validates params and prepares a trial over a precomputed schedule.
// traceCfg may be the zero value to disable tracing.
func NewTrial(params SimulationParameters, schedule ArrivalSchedule, traceCfg trace.TraceConfig) (*Trial, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if schedule.Len() != params.CustomerCount || len(schedule.Interarrivals) != params.CustomerCount {
		return nil, &ConfigurationError{
			Field:  "arrival_schedule",
			Value:  schedule.Len(),
			Reason: fmt.Sprintf("must hold exactly customer_count=%d arrivals", params.CustomerCount),
		}
	}

	t := &Trial{
		Params:   params,
		events:   make(EventQueue, 0, params.CustomerCount+min(params.ServerCount, params.CustomerCount)),
		pool:     NewServerPool(params.ServerCount),
		schedule: schedule,
		records:  make([]CustomerRecord, params.CustomerCount),
		granted:  make([]bool, params.CustomerCount),
	}
	if traceCfg.Enabled() {
		t.trace = trace.NewTrialTrace(traceCfg)
	}
	for i, at := range schedule.Times {
		t.records[i] = CustomerRecord{
			ID:              i,
			ArrivalTime:     at,
			ServiceDuration: params.ServeTime,
			Interarrival:    schedule.Interarrivals[i],
		}
		t.events.Schedule(&ArrivalEvent{time: at, customer: i})
	}
	return t, nil
}

// Run processes events in (timestamp, kind, customer) order until the queue
// drains. A returned *SchedulingInvariantViolation means the engine is broken;
// callers must not treat it as a per-trial configuration problem.
func (t *Trial) Run() (*TrialResult, error) {
	if t.ran {
		panic("Trial.Run: trial already ran")
	}
	t.ran = true

	for t.events.Len() > 0 {
		ev := t.events.PopNext()
		if ev.Timestamp() < t.Clock {
			return nil, &SchedulingInvariantViolation{
				Clock:      t.Clock,
				CustomerID: ev.CustomerID(),
				Detail:     fmt.Sprintf("%s event at %g popped after clock", ev.Kind(), ev.Timestamp()),
			}
		}
		t.Clock = ev.Timestamp()
		logrus.Tracef("[t=%.6f] Executing %T", t.Clock, ev)
		if err := ev.Execute(t); err != nil {
			return nil, err
		}
	}

	for i, ok := range t.granted {
		if !ok {
			return nil, &SchedulingInvariantViolation{Clock: t.Clock, CustomerID: i, Detail: "customer never acquired a server"}
		}
	}
	if t.completed != t.Params.CustomerCount {
		return nil, &SchedulingInvariantViolation{
			Clock:      t.Clock,
			CustomerID: -1,
			Detail:     fmt.Sprintf("%d of %d services completed", t.completed, t.Params.CustomerCount),
		}
	}

	summary, err := Summarize(t.records)
	if err != nil {
		return nil, fmt.Errorf("summarizing trial %s: %w", t.Params, err)
	}

	result := &TrialResult{
		Params:    t.Params,
		Records:   t.records,
		Summary:   summary,
		Reference: ErlangC(t.Params.ServerCount, t.Params.MeanInterarrival(), t.Params.ServeTime),
		Makespan:  t.Clock,
		Trace:     t.trace,
	}
	if t.Clock > 0 {
		busy := float64(t.Params.CustomerCount) * t.Params.ServeTime
		result.Utilization = busy / (float64(t.Params.ServerCount) * t.Clock)
	}
	logrus.Debugf("[t=%.6f] Trial ended: %s mean queue=%.3fs", t.Clock, t.Params, summary.MeanQueueTime)
	return result, nil
}

func (t *Trial) recordArrival(customer int, at float64) {
	if t.trace != nil {
		t.trace.Record(trace.EventRecord{
			CustomerID:  customer,
			Kind:        trace.KindArrival,
			Clock:       at,
			QueueDepth:  t.pool.Waiting(),
			BusyServers: t.pool.Busy(),
		})
	}
}

func (t *Trial) recordCompletion(customer int, at float64) {
	t.completed++
	if t.trace != nil {
		t.trace.Record(trace.EventRecord{
			CustomerID:  customer,
			Kind:        trace.KindCompletion,
			Clock:       at,
			QueueDepth:  t.pool.Waiting(),
			BusyServers: t.pool.Busy(),
		})
	}
}

// startService finalizes the customer's queue time and schedules its completion.
func (t *Trial) startService(g Grant) error {
	if t.granted[g.CustomerID] {
		return &SchedulingInvariantViolation{Clock: g.GrantedAt, CustomerID: g.CustomerID, Detail: "customer granted a server twice"}
	}
	t.granted[g.CustomerID] = true
	t.records[g.CustomerID].QueueTime = g.QueueTime()
	t.records[g.CustomerID].ServiceStart = g.GrantedAt
	t.events.Schedule(&CompletionEvent{time: g.GrantedAt + t.Params.ServeTime, customer: g.CustomerID})

	if t.trace != nil {
		t.trace.Record(trace.EventRecord{
			CustomerID:  g.CustomerID,
			Kind:        trace.KindGrant,
			Clock:       g.GrantedAt,
			QueueDepth:  t.pool.Waiting(),
			BusyServers: t.pool.Busy(),
			Wait:        g.QueueTime(),
		})
	}
	return nil
}

// RunTrial generates exponential arrivals for params from rng and runs one trial.
func RunTrial(params SimulationParameters, rng *rand.Rand, traceCfg trace.TraceConfig) (*TrialResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	sampler, err := NewArrivalSampler(params)
	if err != nil {
		return nil, err
	}
	schedule, err := GenerateArrivals(params.CustomerCount, sampler, rng)
	if err != nil {
		return nil, err
	}
	trial, err := NewTrial(params, schedule, traceCfg)
	if err != nil {
		return nil, err
	}
	return trial.Run()
}
