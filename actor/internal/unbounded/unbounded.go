// Package unbounded provides an unbounded, order-preserving channel
// adapter: Send never blocks the producer, backed by a growable deque
// drained by a forwarding goroutine.
//
// Grounded on markInTheAbyss/go-actor's mailboxWorker (actor/mailbox.go):
// the same shape (a worker goroutine selecting between accepting new
// values, forwarding the front of an internal queue, and a stop signal,
// with OnStop closing both ends) generalized so it can back the
// subordinate-termination and end-signal channels the dispatcher's queue
// requires to be unbounded, so that a dying subordinate's termination
// notification, and an actor's own completion value, never have to wait on
// a slow or absent reader.
package unbounded

import "github.com/gammazero/deque"

// Chan is an unbounded channel: Send always accepts a value immediately
// (short of the Chan having been Closed), and Out delivers values in send
// order.
type Chan[T any] struct {
	sendC    chan T
	receiveC chan T
	stopC    chan struct{}
	abandon  bool
}

// New starts a Chan's forwarding goroutine and returns it ready to use.
func New[T any]() *Chan[T] {
	c := &Chan[T]{
		sendC:    make(chan T),
		receiveC: make(chan T),
		stopC:    make(chan struct{}),
	}
	go c.run()
	return c
}

// Send enqueues v, reporting whether it was accepted. It never blocks
// waiting for a reader; it only blocks (briefly) on the internal handoff
// to the forwarding goroutine, and returns false immediately instead of
// queuing v if the Chan has already been Closed (its receiver is gone).
func (c *Chan[T]) Send(v T) bool {
	select {
	case c.sendC <- v:
		return true
	case <-c.stopC:
		return false
	}
}

// Out returns the receive side. It is closed once Close has been called
// and every buffered value has been forwarded.
func (c *Chan[T]) Out() <-chan T {
	return c.receiveC
}

// Close stops accepting new sends and returns immediately; it does not
// wait for buffered values to finish draining to Out (a caller who
// abandons Out after Close is responsible for that, same as abandoning
// any other channel). Safe to call from the goroutine that is itself
// about to exit, since it never blocks. Use Close only when Out is
// guaranteed to keep being read until it closes (e.g. a stream whose
// reader outlives the writer, such as RootActor.collect); otherwise use
// Abandon.
func (c *Chan[T]) Close() {
	c.stop(false)
}

// Abandon stops accepting new sends like Close, but never attempts to
// forward values still sitting in the internal queue: it drops them and
// closes Out immediately. Use this to close a stream whose only reader
// was tied to the lifetime of the very goroutine now closing it (e.g. an
// actor's own subordinate-end stream, once its dispatch task has stopped
// calling Next on it) — blocking to forward a buffered value to a reader
// that will never come back would leak the forwarding goroutine forever.
func (c *Chan[T]) Abandon() {
	c.stop(true)
}

func (c *Chan[T]) stop(abandon bool) {
	select {
	case <-c.stopC:
	default:
		c.abandon = abandon
		close(c.stopC)
	}
}

// run is this Chan's DoWork-shaped loop: while the queue is empty, wait
// for a send or a stop; once non-empty, race forwarding the front of the
// queue against accepting another send or stopping.
func (c *Chan[T]) run() {
	defer close(c.receiveC)

	var q deque.Deque[T]
	for {
		if q.Len() == 0 {
			select {
			case v := <-c.sendC:
				q.PushBack(v)
				continue
			case <-c.stopC:
				return
			}
		}

		select {
		case c.receiveC <- q.Front():
			q.PopFront()
		case v := <-c.sendC:
			q.PushBack(v)
		case <-c.stopC:
			if !c.abandon {
				c.drain(&q)
			}
			return
		}
	}
}

// drain forwards every value left in q to receiveC before the Chan
// closes, so a Close racing with a pending Send never silently loses a
// value that was already accepted into the queue. It is only safe to call
// when Out is guaranteed to still have a reader; Abandon skips it
// entirely rather than risk blocking forever on a reader that is gone.
func (c *Chan[T]) drain(q *deque.Deque[T]) {
	for q.Len() > 0 {
		c.receiveC <- q.Front()
		q.PopFront()
	}
}
