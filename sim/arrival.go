package sim

import (
	"fmt"
	"math/rand"
)

// ArrivalSampler generates interarrival gaps in seconds.
type ArrivalSampler interface {
	SampleInterarrival(rng *rand.Rand) float64
}

// ExponentialSampler draws exponentially distributed gaps (Poisson arrivals).
type ExponentialSampler struct {
	Mean float64 // mean gap in seconds
}

func (s *ExponentialSampler) SampleInterarrival(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.Mean
}

// ScriptedSampler replays a fixed list of gaps, ignoring the RNG.
// Used to pin down exact schedules in tests and hand-built scenarios.
type ScriptedSampler struct {
	Gaps []float64
	next int
}

func (s *ScriptedSampler) SampleInterarrival(_ *rand.Rand) float64 {
	if s.next >= len(s.Gaps) {
		panic(fmt.Sprintf("ScriptedSampler: exhausted after %d gaps", len(s.Gaps)))
	}
	g := s.Gaps[s.next]
	s.next++
	return g
}

// ArrivalSchedule holds absolute arrival times and the gap that produced each.
// Times[0] == Interarrivals[0] and Times[i] == Times[i-1] + Interarrivals[i].
type ArrivalSchedule struct {
	Times         []float64
	Interarrivals []float64
}

// Len returns the number of arrivals in the schedule.
func (s ArrivalSchedule) Len() int {
	return len(s.Times)
}

// NewArrivalSampler returns the exponential sampler for p.
// Fails with a *ConfigurationError when the mean interarrival is undefined.
func NewArrivalSampler(p SimulationParameters) (ArrivalSampler, error) {
	if err := validateArrivalInputs(p.CustomerCount, p.WindowDuration); err != nil {
		return nil, err
	}
	return &ExponentialSampler{Mean: p.MeanInterarrival()}, nil
}

// GenerateArrivals draws customerCount gaps from sampler and returns their
// running sum as arrival times.
func GenerateArrivals(customerCount int, sampler ArrivalSampler, rng *rand.Rand) (ArrivalSchedule, error) {
	if customerCount < 2 {
		return ArrivalSchedule{}, &ConfigurationError{Field: "customer_count", Value: customerCount, Reason: "must be at least 2"}
	}
	gaps := make([]float64, customerCount)
	for i := range gaps {
		gaps[i] = sampler.SampleInterarrival(rng)
	}
	return ScheduleFromGaps(gaps)
}

// ScheduleFromGaps builds the cumulative schedule for precomputed gaps.
// Negative or NaN gaps are rejected since arrivals must be non-decreasing.
func ScheduleFromGaps(gaps []float64) (ArrivalSchedule, error) {
	times := make([]float64, len(gaps))
	now := 0.0
	for i, g := range gaps {
		if !(g >= 0) {
			return ArrivalSchedule{}, &ConfigurationError{Field: "interarrival", Value: g, Reason: fmt.Sprintf("gap %d must be non-negative", i)}
		}
		now += g
		times[i] = now
	}
	return ArrivalSchedule{Times: times, Interarrivals: gaps}, nil
}
