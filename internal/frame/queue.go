// Package frame drives a continuous, non-blocking frame loop.
//
// A [Host] stands in for the display's refresh signal: callers request a
// callback for the next refresh and may cancel it before it fires. [Queue]
// is the in-process Host shared by every front-end; each front-end calls
// Flush from its own refresh source (a Bubble Tea tick, a window loop, a
// ticker). [Scheduler] builds the Idle/Running loop on top of a Host.
package frame

import "time"

// ID identifies a requested callback. The zero ID is never issued.
type ID uint64

// Callback runs once on the refresh it was requested for.
type Callback func(now time.Time)

// Host schedules callbacks on the next display refresh.
type Host interface {
	Request(cb Callback) ID
	Cancel(id ID)
}

type request struct {
	id ID
	cb Callback
}

// Queue is a single-threaded animation-frame queue.
type Queue struct {
	next     ID
	pending  []request
	inflight []request
}

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// Request queues cb for the next Flush.
func (q *Queue) Request(cb Callback) ID {
	q.next++
	q.pending = append(q.pending, request{id: q.next, cb: cb})
	return q.next
}

// Cancel removes a pending callback. Unknown or already-fired IDs are ignored.
func (q *Queue) Cancel(id ID) {
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.inflight {
		if q.inflight[i].id == id {
			q.inflight[i].cb = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next Flush.
func (q *Queue) Pending() int { return len(q.pending) }

// Flush runs every callback requested before the flush began and returns
// how many ran. Callbacks requested during the flush wait for the next one;
// callbacks cancelled during the flush do not run.
func (q *Queue) Flush(now time.Time) int {
	q.inflight, q.pending = q.pending, nil
	defer func() { q.inflight = nil }()

	ran := 0
	for i := 0; i < len(q.inflight); i++ {
		cb := q.inflight[i].cb
		if cb == nil {
			continue
		}
		q.inflight[i].cb = nil
		cb(now)
		ran++
	}
	return ran
}
