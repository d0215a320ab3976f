package sim

import "math"

// ErlangEstimate is the analytic steady-state reference for a trial.
// Stable is false when offered load meets or exceeds capacity, in which case
// the waiting times are +Inf.
type ErlangEstimate struct {
	Utilization  float64 // ρ = λ / (c·μ)
	ProbWait     float64 // Erlang C: P(arrival must queue)
	MMcQueueTime float64 // mean wait, exponential service
	MDcQueueTime float64 // mean wait, deterministic service (≈ M/M/c / 2)
	Stable       bool
}

// ErlangC solves the M/M/c queue with c servers, mean interarrival meanTBA and
// mean service time serveTime, and derives the M/D/c approximation.
func ErlangC(c int, meanTBA, serveTime float64) ErlangEstimate {
	est := ErlangEstimate{MMcQueueTime: math.Inf(1), MDcQueueTime: math.Inf(1)}
	if c <= 0 || !(meanTBA > 0) || !(serveTime > 0) {
		return est
	}

	a := serveTime / meanTBA // offered load in Erlangs, λ/μ
	rho := a / float64(c)
	est.Utilization = rho
	if rho >= 1 {
		est.ProbWait = 1
		return est
	}

	// Erlang B by the recurrence B(k) = a·B(k-1) / (k + a·B(k-1)), which stays
	// in [0, 1] for any load. Once B underflows every later step is zero too.
	b := 1.0
	for k := 1; k <= c && b > 0; k++ {
		b = a * b / (float64(k) + a*b)
	}
	est.ProbWait = b / (1 - rho*(1-b))

	mu := 1 / serveTime
	est.MMcQueueTime = est.ProbWait / (float64(c)*mu - 1/meanTBA)
	est.MDcQueueTime = est.MMcQueueTime / 2
	est.Stable = true
	return est
}
