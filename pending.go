package kpro

import (
	"container/list"
	"math"
	"time"
)

// saslHandshakeCorrelationID is reserved: it is never handed out by
// pendingRequests.allocate, so the SASL handshake/authenticate exchange can
// use it as a fixed id outside the normal allocation sequence.
const saslHandshakeCorrelationID int32 = math.MaxInt32

type pendingEntry struct {
	corrID      int32
	ref         any
	version     int16
	newResponse func() ProtocolBody
	waiter      chan *Response
	submitAt    time.Time
	elem        *list.Element
}

// pendingRequests tracks in-flight requests by correlation id. Insertion
// order is preserved via an intrusive list so the oldest in-flight request
// (the one a liveness check cares about) is an O(1) lookup.
type pendingRequests struct {
	next    int32
	entries map[int32]*pendingEntry
	order   *list.List
}

func newPendingRequests() *pendingRequests {
	return &pendingRequests{
		entries: make(map[int32]*pendingEntry),
		order:   list.New(),
	}
}

// allocate picks the next correlation id, wrapping back to 0 instead of
// handing out the reserved SASL handshake id. An id still in use (which
// would only happen after the id space wraps with a request still
// outstanding) yields ErrCorrelationIDCollision, a collision the caller must
// treat as fatal.
func (p *pendingRequests) allocate() (int32, error) {
	for i := 0; i < 2; i++ {
		id := p.next
		p.next++
		if p.next == saslHandshakeCorrelationID {
			p.next = 0
		}

		if id == saslHandshakeCorrelationID {
			continue
		}
		if _, busy := p.entries[id]; busy {
			return 0, ErrCorrelationIDCollision
		}
		return id, nil
	}
	return 0, ErrCorrelationIDCollision
}

// add registers a waiter for corrID. now is the submission time, used by
// oldestAge. version is the API version the request was encoded at, so the
// response can be decoded at the same version.
func (p *pendingRequests) add(corrID int32, ref any, version int16, newResponse func() ProtocolBody, waiter chan *Response, now time.Time) {
	entry := &pendingEntry{corrID: corrID, ref: ref, version: version, newResponse: newResponse, waiter: waiter, submitAt: now}
	entry.elem = p.order.PushBack(entry)
	p.entries[corrID] = entry
}

// take removes and returns the entry registered for corrID, if any.
func (p *pendingRequests) take(corrID int32) (*pendingEntry, bool) {
	entry, ok := p.entries[corrID]
	if !ok {
		return nil, false
	}
	delete(p.entries, corrID)
	p.order.Remove(entry.elem)
	return entry, true
}

func (p *pendingRequests) len() int {
	return len(p.entries)
}

// oldestAge returns how long the oldest still-pending request has been
// waiting. ok is false when nothing is pending.
func (p *pendingRequests) oldestAge(now time.Time) (time.Duration, bool) {
	front := p.order.Front()
	if front == nil {
		return 0, false
	}
	return now.Sub(front.Value.(*pendingEntry).submitAt), true
}

// drainEntries removes every pending entry and returns them, used when the
// connection is closing and every in-flight caller needs to be woken with
// an error instead of left blocked forever.
func (p *pendingRequests) drainEntries() []*pendingEntry {
	entries := make([]*pendingEntry, 0, len(p.entries))
	for e := p.order.Front(); e != nil; e = e.Next() {
		entries = append(entries, e.Value.(*pendingEntry))
	}
	p.entries = make(map[int32]*pendingEntry)
	p.order.Init()
	return entries
}
