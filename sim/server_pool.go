package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Grant records a customer being handed a server.
type Grant struct {
	CustomerID  int
	RequestedAt float64
	GrantedAt   float64
}

// QueueTime is the time the customer spent waiting for the grant.
func (g Grant) QueueTime() float64 {
	return g.GrantedAt - g.RequestedAt
}

// ServerPool models serverCount identical servers as one counting resource.
// Requests that find every server busy wait in strict arrival order.
type ServerPool struct {
	capacity int
	holders  map[int]struct{} // customers currently in service
	waitQ    *WaitQueue
}

// NewServerPool creates a pool with the given number of servers.
func NewServerPool(capacity int) *ServerPool {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewServerPool: capacity must be positive, got %d", capacity))
	}
	return &ServerPool{
		capacity: capacity,
		holders:  make(map[int]struct{}),
		waitQ:    &WaitQueue{},
	}
}

// Acquire grants a server immediately when one is free. Otherwise the request
// joins the back of the wait list and ok is false; the customer will be
// granted by a later Release.
func (p *ServerPool) Acquire(customerID int, at float64) (Grant, bool) {
	if len(p.holders) < p.capacity && p.waitQ.Len() == 0 {
		p.holders[customerID] = struct{}{}
		return Grant{CustomerID: customerID, RequestedAt: at, GrantedAt: at}, true
	}
	p.waitQ.Enqueue(PendingRequest{CustomerID: customerID, RequestedAt: at})
	logrus.Tracef("[pool] customer %d queued at %.6fs, waiting=%v", customerID, at, p.waitQ)
	return Grant{}, false
}

// Release frees the server held by customerID. If anyone is waiting, the
// server passes straight to the head of the wait list and that grant is
// returned with ok == true.
// Releasing a server the customer does not hold is a SchedulingInvariantViolation.
func (p *ServerPool) Release(customerID int, at float64) (next Grant, ok bool, err error) {
	if _, held := p.holders[customerID]; !held {
		return Grant{}, false, &SchedulingInvariantViolation{
			Clock:      at,
			CustomerID: customerID,
			Detail:     "release by a customer that holds no server",
		}
	}
	delete(p.holders, customerID)

	head, waiting := p.waitQ.Dequeue()
	if !waiting {
		return Grant{}, false, nil
	}
	p.holders[head.CustomerID] = struct{}{}
	return Grant{CustomerID: head.CustomerID, RequestedAt: head.RequestedAt, GrantedAt: at}, true, nil
}

// Busy returns the number of servers currently in use.
func (p *ServerPool) Busy() int { return len(p.holders) }

// Waiting returns the number of customers in the wait list.
func (p *ServerPool) Waiting() int { return p.waitQ.Len() }
