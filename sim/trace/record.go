// Package trace provides per-trial event tracing for queue analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventKind names what happened to a customer.
type EventKind string

const (
	KindArrival    EventKind = "arrival"
	KindGrant      EventKind = "grant"
	KindCompletion EventKind = "completion"
)

// EventRecord captures the pool state right after one customer event.
type EventRecord struct {
	CustomerID  int
	Kind        EventKind
	Clock       float64
	QueueDepth  int     // customers waiting after the event
	BusyServers int     // servers in use after the event
	Wait        float64 // queue time; set on grants only
}
