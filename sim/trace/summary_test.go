package trace

import (
	"math"
	"testing"
)

func TestSummarize_NilAndEmpty(t *testing.T) {
	for _, tt := range []*TrialTrace{nil, NewTrialTrace(TraceConfig{Level: TraceLevelEvents})} {
		s := Summarize(tt, 2)
		if s.TotalEvents != 0 || s.Utilization != 0 || s.Makespan != 0 {
			t.Errorf("expected zero summary, got %+v", s)
		}
	}
}

func TestSummarize_TwoServers(t *testing.T) {
	// GIVEN two customers served in parallel on two servers, the second after a wait
	// on server 1 only: busy 1 on [0,2), 2 on [2,4), 1 on [4,6)
	tt := NewTrialTrace(TraceConfig{Level: TraceLevelEvents})
	tt.Record(EventRecord{CustomerID: 0, Kind: KindArrival, Clock: 0, BusyServers: 1})
	tt.Record(EventRecord{CustomerID: 0, Kind: KindGrant, Clock: 0, BusyServers: 1})
	tt.Record(EventRecord{CustomerID: 1, Kind: KindArrival, Clock: 1, BusyServers: 1, QueueDepth: 1})
	tt.Record(EventRecord{CustomerID: 1, Kind: KindGrant, Clock: 2, BusyServers: 2, Wait: 1})
	tt.Record(EventRecord{CustomerID: 0, Kind: KindCompletion, Clock: 4, BusyServers: 1})
	tt.Record(EventRecord{CustomerID: 1, Kind: KindCompletion, Clock: 6, BusyServers: 0})

	// WHEN summarized
	s := Summarize(tt, 2)

	// THEN counts, depth and utilization reflect the timeline
	if s.TotalEvents != 6 || s.Arrivals != 2 || s.Grants != 2 || s.Completions != 2 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.MaxQueueDepth != 1 {
		t.Errorf("MaxQueueDepth = %d, want 1", s.MaxQueueDepth)
	}
	if s.CustomersWaited != 1 {
		t.Errorf("CustomersWaited = %d, want 1", s.CustomersWaited)
	}
	if s.Makespan != 6 {
		t.Errorf("Makespan = %v, want 6", s.Makespan)
	}
	// busy area = 1*1 + 1*1 + 2*2 + 1*2 = 8 over 2 servers × 6s
	if want := 8.0 / 12.0; math.Abs(s.Utilization-want) > 1e-12 {
		t.Errorf("Utilization = %v, want %v", s.Utilization, want)
	}
}
