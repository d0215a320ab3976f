// Implements the WaitQueue, which holds customers waiting for a free server.
// Customers are enqueued on arrival when every server is busy.

package sim

import (
	"fmt"
	"strings"
)

// PendingRequest is a customer blocked on the ServerPool.
type PendingRequest struct {
	CustomerID  int
	RequestedAt float64
}

func (r PendingRequest) String() string {
	return fmt.Sprintf("%d@%g", r.CustomerID, r.RequestedAt)
}

// WaitQueue represents a strict FIFO queue of customers waiting for a server.
type WaitQueue struct {
	queue []PendingRequest
}

// Enqueue adds a request to the back of the wait queue.
func (wq *WaitQueue) Enqueue(r PendingRequest) {
	wq.queue = append(wq.queue, r)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(val.String())
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of requests in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Dequeue removes and returns the request at the front of the queue.
func (wq *WaitQueue) Dequeue() (PendingRequest, bool) {
	if len(wq.queue) == 0 {
		return PendingRequest{}, false
	}
	head := wq.queue[0]
	wq.queue = wq.queue[1:]
	return head, true
}
