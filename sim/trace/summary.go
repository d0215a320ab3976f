package trace

// TraceSummary aggregates statistics from a TrialTrace.
type TraceSummary struct {
	TotalEvents     int
	Arrivals        int
	Grants          int
	Completions     int
	MaxQueueDepth   int
	CustomersWaited int     // grants with a positive wait
	Makespan        float64 // clock of the last recorded event
	Utilization     float64 // busy server-seconds / (servers × makespan)
}

// Summarize computes aggregate statistics from a TrialTrace for a pool of
// the given size. Safe for nil or empty traces (returns zero-value fields).
func Summarize(tt *TrialTrace, servers int) *TraceSummary {
	summary := &TraceSummary{}
	if tt == nil || len(tt.Events) == 0 {
		return summary
	}

	busyArea := 0.0
	prevClock, prevBusy := 0.0, 0
	for _, ev := range tt.Events {
		busyArea += float64(prevBusy) * (ev.Clock - prevClock)
		prevClock, prevBusy = ev.Clock, ev.BusyServers

		switch ev.Kind {
		case KindArrival:
			summary.Arrivals++
		case KindGrant:
			summary.Grants++
			if ev.Wait > 0 {
				summary.CustomersWaited++
			}
		case KindCompletion:
			summary.Completions++
		}
		if ev.QueueDepth > summary.MaxQueueDepth {
			summary.MaxQueueDepth = ev.QueueDepth
		}
	}

	summary.TotalEvents = len(tt.Events)
	summary.Makespan = prevClock
	if servers > 0 && summary.Makespan > 0 {
		summary.Utilization = busyArea / (float64(servers) * summary.Makespan)
	}
	return summary
}
