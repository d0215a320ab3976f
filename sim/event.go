package sim

import "github.com/sirupsen/logrus"

// EventKind distinguishes the two event types of a trial.
type EventKind int

const (
	// KindCompletion frees a server. Ordered ahead of arrivals at the same
	// instant so released capacity is visible to customers arriving then.
	KindCompletion EventKind = iota
	// KindArrival puts a customer in front of the ServerPool.
	KindArrival
)

func (k EventKind) String() string {
	switch k {
	case KindCompletion:
		return "completion"
	case KindArrival:
		return "arrival"
	default:
		return "unknown"
	}
}

// Event defines the interface for all trial events.
// Each event has a Timestamp (in simulated seconds) and an Execute method
// that advances trial state when invoked.
type Event interface {
	Timestamp() float64
	Kind() EventKind
	CustomerID() int
	Execute(*Trial) error
}

// ArrivalEvent represents a customer reaching the queue.
type ArrivalEvent struct {
	time     float64
	customer int
}

func (e *ArrivalEvent) Timestamp() float64 { return e.time }
func (e *ArrivalEvent) Kind() EventKind    { return KindArrival }
func (e *ArrivalEvent) CustomerID() int    { return e.customer }

// Execute requests a server; a granted request schedules its completion at once,
// otherwise the customer waits in the pool until a release hands it a server.
func (e *ArrivalEvent) Execute(t *Trial) error {
	logrus.Tracef("<< Arrival: customer %d at %.6fs", e.customer, e.time)
	grant, ok := t.pool.Acquire(e.customer, e.time)
	t.recordArrival(e.customer, e.time)
	if ok {
		return t.startService(grant)
	}
	return nil
}

// CompletionEvent represents a customer leaving its server.
type CompletionEvent struct {
	time     float64
	customer int
}

func (e *CompletionEvent) Timestamp() float64 { return e.time }
func (e *CompletionEvent) Kind() EventKind    { return KindCompletion }
func (e *CompletionEvent) CustomerID() int    { return e.customer }

// Execute releases the customer's server and starts service for the head of
// the wait list, if any.
func (e *CompletionEvent) Execute(t *Trial) error {
	logrus.Tracef("<< Completion: customer %d at %.6fs", e.customer, e.time)
	next, ok, err := t.pool.Release(e.customer, e.time)
	if err != nil {
		return err
	}
	t.recordCompletion(e.customer, e.time)
	if ok {
		return t.startService(next)
	}
	return nil
}
