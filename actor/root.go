package actor

import (
	"context"

	"github.com/markinabyss/reflexactor/actor/internal/unbounded"
)

// RootResult is the value a RootActor eventually produces: either the End
// value delivered through MutGuard.Delete, or ErrAbnormalClose if the
// actor's dispatch task terminated without one.
type RootResult[E any] struct {
	Value E
	Err   error
}

// RootActor is an actor with no supervisor above it. Nothing else observes
// its termination automatically, so RootActor collects its own End value
// and hands it out through Wait or Result.
type RootActor[Act, S, M, E, SE any] struct {
	actor   Actor
	mailbox Mailbox[S, M]

	done   chan struct{}
	result RootResult[E]
}

// NewRoot creates and starts a root actor: initial is its starting user
// value, handlers its message callbacks. The returned RootActor owns the
// only reference to the actor's dispatch task.
func NewRoot[Act, S, M, E, SE any](
	initial Act,
	handlers Handlers[Act, S, M, E, SE],
	opts ...Option,
) *RootActor[Act, S, M, E, SE] {
	end := unbounded.New[E]()
	state, mailboxCh, dropSend := newActor[Act, S, M, E, SE](initial, handlers, end, true, opts...)
	dispatch, mailbox := spawn(state, mailboxCh, dropSend)

	r := &RootActor[Act, S, M, E, SE]{
		actor:   dispatch,
		mailbox: mailbox,
		done:    make(chan struct{}),
	}
	go r.collect(end)
	return r
}

// collect blocks for the actor's single End value, or its absence, and
// publishes whichever it gets before closing done. end.Out() delivers any
// value queued before Close in FIFO order ahead of closing, so a value sent
// by Delete is always observed here before the "closed with nothing
// queued" case.
func (r *RootActor[Act, S, M, E, SE]) collect(end *unbounded.Chan[E]) {
	v, ok := <-end.Out()
	if ok {
		r.result = RootResult[E]{Value: v}
	} else {
		r.result = RootResult[E]{Err: ErrAbnormalClose}
	}
	close(r.done)
}

// Mailbox returns an owning handle for sending messages to this actor.
// Close it, or each of its clones, exactly once when done with it.
func (r *RootActor[Act, S, M, E, SE]) Mailbox() Mailbox[S, M] {
	return r.mailbox
}

// Stop asks the actor's dispatch task to exit immediately, without going
// through a handler's Delete. Wait then reports ErrAbnormalClose.
func (r *RootActor[Act, S, M, E, SE]) Stop() {
	r.actor.Stop()
}

// Result returns a channel that delivers this actor's RootResult exactly
// once, whether or not anything is waiting when it becomes available. Safe
// to call more than once, or never.
func (r *RootActor[Act, S, M, E, SE]) Result() <-chan RootResult[E] {
	c := make(chan RootResult[E], 1)
	go func() {
		<-r.done
		c <- r.result
	}()
	return c
}

// Wait blocks until the actor terminates, returning its End value, or
// ErrAbnormalClose if it terminated without one, or ctx's error if ctx is
// cancelled first.
func (r *RootActor[Act, S, M, E, SE]) Wait(ctx context.Context) (E, error) {
	select {
	case <-r.done:
		return r.result.Value, r.result.Err
	case <-ctx.Done():
		var zero E
		return zero, ctx.Err()
	}
}
