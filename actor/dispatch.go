package actor

import (
	"github.com/markinabyss/reflexactor/actor/internal/access"
	"github.com/markinabyss/reflexactor/actor/internal/queue"
)

// Handlers bundles the callbacks an actor type supplies: handling of
// shared messages, exclusive messages, and subordinate-termination
// notifications. Exactly one of these runs per dispatched message, always
// under the access a compatible guard grants.
type Handlers[Act, S, M, E, SE any] struct {
	Shared         func(SharedGuard[Act, E, SE], S)
	Exclusive      func(MutGuard[Act, E, SE], M)
	SubordinateEnd func(MutGuard[Act, E, SE], SE)
}

// ActorState is the dispatch task: the long-lived Worker that owns an
// actor's user value, multiplexes its message sources through a
// queue.Queue, and hands out access guards to Handlers. Its DoWork does one
// attempt per call: resync access status, obtain (or wait to re-attempt) a
// message, apply any pending release mode, check compatibility, and either
// dispatch or hold the message back for the next wakeup.
//
// Grounded on reflex/src/internal/dispatch.rs (original_source) for the
// protocol, and on markInTheAbyss/go-actor's Worker/DoWork shape for how a
// "poll" becomes a Go call.
type ActorState[Act, S, M, E, SE any] struct {
	cell     *cell[Act, E, SE]
	queue    *queue.Queue[MailboxEntry[S, M], SE]
	handlers Handlers[Act, S, M, E, SE]

	// ownsEndSignal is true for a root actor, whose endSignalSend is a
	// stream it created and is the only writer into; false for a
	// subordinate, whose endSignalSend aliases its supervisor's
	// subordEndSend, a stream potentially shared with sibling
	// subordinates that only the supervisor's own OnStop may close.
	ownsEndSignal bool

	status access.Status
	curr   *queue.Entry[MailboxEntry[S, M], SE]
}

func (s *ActorState[Act, S, M, E, SE]) resync() {
	if s.status != access.Available && s.cell.count.Load() == 0 {
		s.status = access.Available
	}
}

// DoWork performs one attempt at advancing the actor.
func (s *ActorState[Act, S, M, E, SE]) DoWork(ctx Context) WorkerStatus {
	// Step A.
	s.resync()

	// Step C happens here, before any fetch, not after: a Delete observed
	// on the previous attempt already took the user value out and left
	// curr nil, so this attempt must terminate before trying to pull a
	// new entry off a queue that may never produce one again.
	if terminal := s.applyReleaseMode(); terminal {
		return WorkerEnd
	}

	// Step B.
	if s.curr == nil {
		entry, ok := s.queue.Next(ctx.Done())
		if !ok {
			return WorkerEnd
		}
		s.curr = &entry
	} else {
		// The current message was already dequeued and found
		// incompatible on a previous attempt. It must not be re-dequeued;
		// the dispatcher waits to be re-woken by the guard(s) that made
		// it incompatible, which captured this wake handle when they
		// were minted. The wake can equally be carrying a release-mode
		// change (Downgrade, or Delete from a different in-flight guard
		// than the one that produced curr), so the mode is re-checked
		// after waking.
		select {
		case <-s.cell.wake.ch():
		case <-ctx.Done():
			return WorkerEnd
		}
		s.resync()
		if terminal := s.applyReleaseMode(); terminal {
			return WorkerEnd
		}
	}

	// Step D.
	if !s.compatible() {
		return WorkerContinue
	}

	// Step E.
	s.dispatchCurrent()
	s.curr = nil

	// Step F.
	return WorkerContinue
}

// applyReleaseMode reads and clears the pending release mode, folding a
// Downgrade into status and reporting whether a Delete means this attempt
// must end the dispatch task now, before touching curr or the queue again.
func (s *ActorState[Act, S, M, E, SE]) applyReleaseMode() (terminal bool) {
	switch s.cell.mode.SwapNormal() {
	case access.Downgrade:
		if s.status == access.Exclusive {
			s.status = access.Shared
		}
	case access.Delete:
		// The deleting guard has already taken the user value out; the
		// dispatcher must not touch the slot, or the queue, again.
		return true
	}
	return false
}

// OnStop runs once this dispatch task's goroutine is about to exit,
// whatever the reason. It always abandons this actor's own
// subordinate-end stream: this dispatch task was the only thing that ever
// called Next on it, so once it is gone no reader will ever come back for
// a value still sitting in the queue, and blocking to forward one would
// leak the stream's forwarding goroutine forever. It closes the outbound
// end-signal stream, draining it, only if this actor owns it outright (a
// root actor, whose RootActor.collect keeps reading until that stream
// closes); a subordinate's endSignalSend is its supervisor's shared
// subordEndSend, which only the supervisor's own OnStop may touch —
// otherwise the first subordinate to terminate would cut off every
// sibling's ability to ever report its own termination.
func (s *ActorState[Act, S, M, E, SE]) OnStop() {
	if s.ownsEndSignal {
		s.cell.endSignalSend.Close()
	}
	s.cell.subordEndSend.Abandon()
}

func (s *ActorState[Act, S, M, E, SE]) compatible() bool {
	switch s.curr.Kind {
	case queue.KindSubordEnd:
		return s.status == access.Available
	case queue.KindMailbox:
		if s.curr.Mailbox.isMut() {
			return s.status == access.Available
		}
		return s.status == access.Available || s.status == access.Shared
	default:
		return false
	}
}

func (s *ActorState[Act, S, M, E, SE]) dispatchCurrent() {
	entry := *s.curr

	switch entry.Kind {
	case queue.KindMailbox:
		if entry.Mailbox.isMut() {
			s.cell.count.AcquireExclusive()
			s.status = access.Exclusive
			g := MutGuard[Act, E, SE]{g: &guard[Act, E, SE]{mode: modeExclusive, cell: s.cell}}
			s.handlers.Exclusive(g, *entry.Mailbox.mut)
			return
		}

		s.status = access.Shared
		for _, msg := range entry.Mailbox.shared {
			s.cell.count.IncShared()
			g := SharedGuard[Act, E, SE]{g: &guard[Act, E, SE]{mode: modeShared, cell: s.cell}}
			s.handlers.Shared(g, msg)
		}

	case queue.KindSubordEnd:
		s.cell.count.AcquireExclusive()
		s.status = access.Exclusive
		g := MutGuard[Act, E, SE]{g: &guard[Act, E, SE]{mode: modeExclusive, cell: s.cell}}
		s.handlers.SubordinateEnd(g, entry.SubordEnd)
	}
}
