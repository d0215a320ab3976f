package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every arrival, grant and completion.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelEvents
}

// TrialTrace collects event records during one trial.
type TrialTrace struct {
	Config TraceConfig
	Events []EventRecord
}

// NewTrialTrace creates a TrialTrace ready for recording.
func NewTrialTrace(config TraceConfig) *TrialTrace {
	return &TrialTrace{
		Config: config,
		Events: make([]EventRecord, 0),
	}
}

// Record appends an event record.
func (tt *TrialTrace) Record(record EventRecord) {
	tt.Events = append(tt.Events, record)
}
