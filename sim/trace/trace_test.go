package trace

import (
	"testing"
)

func TestTrialTrace_Record_AppendsInOrder(t *testing.T) {
	// GIVEN a trace configured for events
	tt := NewTrialTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN two records are added
	tt.Record(EventRecord{CustomerID: 0, Kind: KindArrival, Clock: 1})
	tt.Record(EventRecord{CustomerID: 0, Kind: KindGrant, Clock: 1})

	// THEN both are kept in insertion order
	if len(tt.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(tt.Events))
	}
	if tt.Events[0].Kind != KindArrival || tt.Events[1].Kind != KindGrant {
		t.Errorf("unexpected order: %v", tt.Events)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"events", true},
		{"", true},
		{"decisions", false},
		{"EVENTS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{}).Enabled() {
		t.Error("zero config must be disabled")
	}
	if (TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none must be disabled")
	}
	if !(TraceConfig{Level: TraceLevelEvents}).Enabled() {
		t.Error("events must be enabled")
	}
}
