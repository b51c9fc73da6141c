package boardhub

import (
	"errors"
	"sync"
)

// Send buffer per connection. A connection that falls this far behind
// starts dropping frames; delivery is best-effort.
const sendBufferSize = 256

var (
	errConnClosed     = errors.New("boardhub: connection closed")
	errSendBufferFull = errors.New("boardhub: send buffer full")
)

// Conn is one live transport session belonging to a user. A user may
// hold several at once (multiple tabs); each is tracked independently
// and never merged. The registry is the only component that mutates a
// Conn's room set.
type Conn struct {
	// UserID is assigned at admission and immutable afterwards.
	UserID string

	rooms map[int64]struct{} // guarded by the owning Registry's mutex

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newConn(userID string) *Conn {
	return &Conn{
		UserID: userID,
		rooms:  make(map[int64]struct{}),
		send:   make(chan []byte, sendBufferSize),
	}
}

// Outbound returns the channel the transport's write loop drains.
func (c *Conn) Outbound() <-chan []byte {
	return c.send
}

// trySend queues one frame without blocking. A closed connection or a
// full buffer counts as a failed send; the caller logs and skips, and
// the transport-close handler reaps the connection later.
func (c *Conn) trySend(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

// Close shuts the outbound channel, stopping the write loop. Safe to
// call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
