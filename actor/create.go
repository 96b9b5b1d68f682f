package actor

import (
	"github.com/markinabyss/reflexactor/actor/internal/queue"
	"github.com/markinabyss/reflexactor/actor/internal/unbounded"
)

// newActor wires the concurrency mechanism for one actor: it builds the
// mailbox channel, the subordinate-end stream, the drop signal, and the
// shared cell, and returns the not-yet-spawned dispatch task alongside the
// handles its caller (NewRoot or CreateSubordinate) needs to construct a
// Mailbox.
//
// ownsEndSignal tells newActor whether the dispatch task being built is
// the one responsible for closing endSignalSend when it exits. A root
// actor creates and owns that stream outright. A subordinate's
// endSignalSend, by contrast, is its supervisor's own subordEndSend
// stream (see CreateSubordinate) — shared across every subordinate that
// supervisor may ever spawn, so no individual subordinate may close it;
// only the supervisor's own dispatch task, via its own OnStop, owns that
// close.
func newActor[Act, S, M, E, SE any](
	initial Act,
	handlers Handlers[Act, S, M, E, SE],
	endSignalSend *unbounded.Chan[E],
	ownsEndSignal bool,
	opts ...Option,
) (state *ActorState[Act, S, M, E, SE], mailboxSend chan<- MailboxEntry[S, M], drop *dropSignalSend) {
	o := newOptions(opts)

	mailboxCh := make(chan MailboxEntry[S, M], o.mailboxCapacity)
	subordEnd := unbounded.New[SE]()
	dropSend, dropRecv := newDropSignal()

	c := &cell[Act, E, SE]{
		value:         &initial,
		wake:          newWakeHandle(),
		endSignalSend: endSignalSend,
		subordEndSend: subordEnd,
	}

	q := queue.New[MailboxEntry[S, M], SE](dropRecv, subordEnd.Out(), mailboxCh)

	state = &ActorState[Act, S, M, E, SE]{
		cell:          c,
		queue:         q,
		handlers:      handlers,
		ownsEndSignal: ownsEndSignal,
	}

	return state, mailboxCh, dropSend
}

// spawn starts state's dispatch task on its own goroutine and wraps
// mailboxCh and drop into an owning Mailbox, as both NewRoot and
// CreateSubordinate need to. ActorState implements OnStopper itself, so
// New picks up its cleanup without an explicit OptOnStop.
func spawn[Act, S, M, E, SE any](
	state *ActorState[Act, S, M, E, SE],
	mailboxCh chan<- MailboxEntry[S, M],
	drop *dropSignalSend,
) (Actor, Mailbox[S, M]) {
	dispatch := New(state)
	mailbox := newOwningMailbox[S, M](mailboxCh, dispatch.Done(), newDropSignalOwner(drop))
	return dispatch, mailbox
}
