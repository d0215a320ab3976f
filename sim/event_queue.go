package sim

import "container/heap"

// EventQueue implements heap.Interface with deterministic ordering.
// Order by: timestamp → event kind (completions first) → customer ID.
type EventQueue []Event

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	ei, ej := eq[i], eq[j]

	// Primary: timestamp (lower first)
	if ei.Timestamp() != ej.Timestamp() {
		return ei.Timestamp() < ej.Timestamp()
	}

	// Secondary: kind
	if ei.Kind() != ej.Kind() {
		return ei.Kind() < ej.Kind()
	}

	// Tertiary: customer ID (lower first, deterministic tie-breaker)
	return ei.CustomerID() < ej.CustomerID()
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}

// Schedule adds an event to the queue.
func (eq *EventQueue) Schedule(e Event) {
	heap.Push(eq, e)
}

// PopNext removes and returns the next event, or nil when empty.
func (eq *EventQueue) PopNext() Event {
	if eq.Len() == 0 {
		return nil
	}
	return heap.Pop(eq).(Event)
}
