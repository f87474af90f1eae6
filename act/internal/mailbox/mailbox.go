// Package mailbox implements the ordered, per-process message buffer
// behind selective receive. Messages append at the tail; removal happens
// only through a successful shape match, which may remove from any
// position while every other message keeps its relative arrival order.
package mailbox

import (
	"errors"
	"sync"
	"time"

	"github.com/uberbrodt/act-go/act/shape"
)

var (
	// ErrClosed is returned once the mailbox is closed and will never
	// yield another message.
	ErrClosed = errors.New("mailbox closed")
	// ErrTimeout is returned when a bounded take expires with no match.
	ErrTimeout = errors.New("mailbox take timed out")
)

type Mailbox struct {
	msgQ   []any
	mx     sync.Mutex
	cond   *sync.Cond
	closed bool
}

// New creates an empty Mailbox. Writers use [Mailbox.Put]; the owning
// process takes messages with [Mailbox.Take] or [Mailbox.TakeTimeout].
// All methods are safe for concurrent use.
func New() *Mailbox {
	b := &Mailbox{
		msgQ: make([]any, 0, 10),
	}
	b.cond = sync.NewCond(&b.mx)
	return b
}

// Put appends a message at the tail and wakes any blocked taker, which
// then re-scans the whole queue. Returns false if the mailbox is closed.
func (b *Mailbox) Put(msg any) bool {
	b.mx.Lock()
	defer b.mx.Unlock()

	if b.closed {
		return false
	}

	b.msgQ = append(b.msgQ, msg)
	b.cond.Broadcast()

	return true
}

// scan is the selective-receive core: messages outer loop in arrival
// order, shapes inner loop in caller order. The first matching pair wins
// and the message is removed; everything else stays put. With zero
// shapes the oldest message is taken under the implicit wildcard.
// Callers must hold b.mx.
func (b *Mailbox) scan(shapes []shape.Shape) (shape.Shape, any, bool) {
	if len(shapes) == 0 {
		if len(b.msgQ) == 0 {
			return nil, nil, false
		}
		head := b.msgQ[0]
		b.msgQ = append(b.msgQ[:0:0], b.msgQ[1:]...)
		return shape.Any(), head, true
	}
	for i, msg := range b.msgQ {
		for _, s := range shapes {
			if shape.Match(s, msg) {
				b.msgQ = append(b.msgQ[:i:i], b.msgQ[i+1:]...)
				return s, msg, true
			}
		}
	}
	return nil, nil, false
}

// Take attempts a non-blocking selective removal. ok is false when no
// pending message matches any shape; the mailbox is left unchanged.
func (b *Mailbox) Take(shapes ...shape.Shape) (matched shape.Shape, msg any, ok bool) {
	b.mx.Lock()
	defer b.mx.Unlock()

	if b.closed {
		return nil, nil, false
	}
	return b.scan(shapes)
}

// TakeTimeout blocks until a message matches one of the shapes.
//
// tout < 0 blocks until a match or close; tout == 0 polls exactly once;
// otherwise the call gives up with [ErrTimeout] after tout. Every wake
// re-scans the entire queue, not just new arrivals.
func (b *Mailbox) TakeTimeout(tout time.Duration, shapes ...shape.Shape) (matched shape.Shape, msg any, err error) {
	b.mx.Lock()
	defer b.mx.Unlock()

	var deadline time.Time
	if tout > 0 {
		deadline = time.Now().Add(tout)
		// broadcast under the lock: the waiter holds b.mx from the
		// deadline re-check until Wait parks, so the wakeup cannot land
		// in between and get dropped
		t := time.AfterFunc(tout, func() {
			b.mx.Lock()
			b.cond.Broadcast()
			b.mx.Unlock()
		})
		defer t.Stop()
	}

	for {
		if b.closed {
			return nil, nil, ErrClosed
		}
		if s, m, ok := b.scan(shapes); ok {
			return s, m, nil
		}
		if tout == 0 {
			return nil, nil, ErrTimeout
		}
		if tout > 0 && !time.Now().Before(deadline) {
			return nil, nil, ErrTimeout
		}
		b.cond.Wait()
	}
}

// Len returns the number of pending messages.
func (b *Mailbox) Len() int {
	b.mx.Lock()
	defer b.mx.Unlock()

	return len(b.msgQ)
}

// Pending returns a snapshot of the queue in arrival order.
func (b *Mailbox) Pending() []any {
	b.mx.Lock()
	defer b.mx.Unlock()

	result := make([]any, len(b.msgQ))
	copy(result, b.msgQ)
	return result
}

// Close wakes all blocked takers with [ErrClosed] and rejects further
// Puts. Idempotent.
func (b *Mailbox) Close() {
	b.mx.Lock()
	defer b.mx.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.cond.Broadcast()
}
