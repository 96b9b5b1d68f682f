package actor

import "sync/atomic"

// dropSignalSend is the send-end of the oneshot-backed drop signal
// injected into an actor's MsgQueue as its highest-priority source. Firing
// it orphans the actor.
//
// Grounded on util/drop_signal.rs (original_source): a oneshot sender
// whose drop (there) or explicit fire (here, since Go has no destructor
// to piggy-back on, see DESIGN.md) completes the paired receiver exactly
// once.
type dropSignalSend struct {
	c      chan struct{}
	closed atomic.Bool
}

// newDropSignal returns a fresh send/receive pair.
func newDropSignal() (*dropSignalSend, <-chan struct{}) {
	c := make(chan struct{})
	return &dropSignalSend{c: c}, c
}

func (s *dropSignalSend) fire() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.c)
	}
}

// dropSignalOwner is a reference-counted handle around a dropSignalSend.
// Every owning Mailbox clone holds one clone of the same owner; once every
// clone has been released, the underlying signal fires.
//
// Rust ties this to Arc<DropSignalSend>'s Drop impl, which runs
// deterministically as values go out of scope. Go has no equivalent
// deterministic destructor, and this module follows the rest of the
// pack in avoiding runtime.SetFinalizer (see DESIGN.md), so ownership
// release here is explicit: call Mailbox.Close when you are done with an
// owning handle, exactly once per Clone.
type dropSignalOwner struct {
	send *dropSignalSend
	refs *atomic.Int32
}

func newDropSignalOwner(send *dropSignalSend) *dropSignalOwner {
	refs := &atomic.Int32{}
	refs.Store(1)
	return &dropSignalOwner{send: send, refs: refs}
}

func (o *dropSignalOwner) clone() *dropSignalOwner {
	o.refs.Add(1)
	return &dropSignalOwner{send: o.send, refs: o.refs}
}

// release decrements the reference count; once it reaches zero, the
// underlying drop signal fires.
func (o *dropSignalOwner) release() {
	if o.refs.Add(-1) == 0 {
		o.send.fire()
	}
}
