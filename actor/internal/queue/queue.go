// Package queue implements the actor dispatcher's priority-ordered,
// multi-source message stream: drop signal first (terminal), then
// subordinate-termination notifications, then ordinary mailbox entries.
//
// Grounded on reflex/src/internal/queue.rs (original_source): that stream
// polls its kill signal first, returning end-of-stream immediately if it
// fired; then polls the subordinate-end receiver; then the mailbox
// receiver; and reports not-ready only once every remaining source has
// reported not-ready, fully-terminated once every source is closed.
package queue

// Kind tags which source produced an Entry.
type Kind int

const (
	KindMailbox Kind = iota
	KindSubordEnd
)

// Entry is one item pulled off the queue.
type Entry[Mailbox, SubordEnd any] struct {
	Kind      Kind
	Mailbox   Mailbox
	SubordEnd SubordEnd
}

// Queue multiplexes a drop signal, a subordinate-end channel, and a
// mailbox channel behind the priority order the dispatcher requires.
//
// Both the subordinate-end and mailbox channels are treated as fused: once
// observed closed, Queue never selects on them again, matching the "keeps
// reporting ready-with-none forever" behavior Rust's Stream::fuse gives
// for free (Go channels already behave this way when read with the
// `v, ok := <-c` idiom, so no wrapper type is needed to get it).
type Queue[Mailbox, SubordEnd any] struct {
	drop      <-chan struct{}
	subordEnd <-chan SubordEnd
	mailbox   <-chan Mailbox

	subordEndDone bool
	mailboxDone   bool

	// pending holds a mailbox entry that won a race against a
	// subordinate-end entry inside the blocking wait below, so the next
	// loop iteration can give the subordinate-end source first refusal as
	// required by priority, instead of returning the mailbox entry that
	// happened to be selected.
	pending    Mailbox
	hasPending bool
}

// New constructs a Queue over the three given sources.
func New[Mailbox, SubordEnd any](
	drop <-chan struct{},
	subordEnd <-chan SubordEnd,
	mailbox <-chan Mailbox,
) *Queue[Mailbox, SubordEnd] {
	return &Queue[Mailbox, SubordEnd]{
		drop:      drop,
		subordEnd: subordEnd,
		mailbox:   mailbox,
	}
}

// Next blocks until the next entry is available in priority order, the
// queue has terminated (ok=false, because the drop signal fired or both
// user sources are closed and drained), or done closes (ok=false).
func (q *Queue[Mailbox, SubordEnd]) Next(done <-chan struct{}) (entry Entry[Mailbox, SubordEnd], ok bool) {
	for {
		// Priority 1: the drop signal. Terminal: the queue never emits an
		// element for it, it simply ends.
		select {
		case <-q.drop:
			return entry, false
		default:
		}

		// Priority 2: subordinate-end, non-blocking.
		if !q.subordEndDone {
			select {
			case se, open := <-q.subordEnd:
				if !open {
					q.subordEndDone = true
				} else {
					return Entry[Mailbox, SubordEnd]{Kind: KindSubordEnd, SubordEnd: se}, true
				}
			default:
			}
		}

		// Priority 3: a stashed mailbox entry, or the mailbox channel
		// itself, non-blocking.
		if q.hasPending {
			m := q.pending
			q.hasPending = false
			var zero Mailbox
			q.pending = zero
			return Entry[Mailbox, SubordEnd]{Kind: KindMailbox, Mailbox: m}, true
		}
		if !q.mailboxDone {
			select {
			case m, open := <-q.mailbox:
				if !open {
					q.mailboxDone = true
				} else {
					return Entry[Mailbox, SubordEnd]{Kind: KindMailbox, Mailbox: m}, true
				}
			default:
			}
		}

		if q.subordEndDone && q.mailboxDone {
			return entry, false
		}

		// Nothing is ready: park for a wakeup. Both user channels are
		// included in this blocking select for responsiveness, but a
		// mailbox entry that wins the select race is stashed rather than
		// returned directly, so the loop's priority checks above get to
		// decide in the (rare) case that a subordinate-end entry becomes
		// ready in the same instant.
		select {
		case <-done:
			return entry, false
		case <-q.drop:
			return entry, false
		case se, open := <-subordEndOrNil(q):
			if !open {
				q.subordEndDone = true
			} else {
				return Entry[Mailbox, SubordEnd]{Kind: KindSubordEnd, SubordEnd: se}, true
			}
		case m, open := <-mailboxOrNil(q):
			if !open {
				q.mailboxDone = true
			} else {
				q.pending = m
				q.hasPending = true
			}
		}
	}
}

// subordEndOrNil returns q.subordEnd unless it has already been observed
// closed, in which case it returns nil: selecting on a nil channel blocks
// forever, which is exactly what "don't consider this source again" means
// inside a select.
func subordEndOrNil[Mailbox, SubordEnd any](q *Queue[Mailbox, SubordEnd]) <-chan SubordEnd {
	if q.subordEndDone {
		return nil
	}
	return q.subordEnd
}

func mailboxOrNil[Mailbox, SubordEnd any](q *Queue[Mailbox, SubordEnd]) <-chan Mailbox {
	if q.mailboxDone {
		return nil
	}
	return q.mailbox
}
