package actor

import (
	"log"

	"github.com/markinabyss/reflexactor/actor/internal/access"
)

type guardMode int

const (
	modeShared guardMode = iota
	modeExclusive
)

// guard is the representation shared by SharedGuard and MutGuard. This
// module takes the single-type, mode-field approach to downgrade rather
// than the bitwise-reinterpretation trick the original relies on Rust's
// layout guarantees for: Downgrade mutates mode and leaves everything
// else, in particular the underlying *cell and its access count,
// untouched.
type guard[Act, E, SE any] struct {
	mode guardMode
	cell *cell[Act, E, SE]
}

func (g *guard[Act, E, SE]) releaseShared() {
	if g.cell.count.DecShared() {
		g.cell.wake.wake()
	}
}

func (g *guard[Act, E, SE]) releaseExclusive() {
	g.cell.count.ReleaseExclusive()
	g.cell.wake.wake()
}

// SharedGuard grants read access to an actor's user value. It is
// clonable: cloning mints another read session over the same actor,
// incrementing the shared access count.
type SharedGuard[Act, E, SE any] struct {
	g *guard[Act, E, SE]
}

// Get returns the current user value. SharedGuard carries no static
// guarantee against mutation through the returned pointer: Go has no
// const-pointer / "shared reference" type to enforce that the way Rust's
// guard deref to &Act does. Callers are expected to treat it as read-only.
func (s SharedGuard[Act, E, SE]) Get() *Act {
	return s.g.cell.value
}

// Clone mints another shared guard over the same actor, incrementing the
// access counter. Release each clone exactly once.
func (s SharedGuard[Act, E, SE]) Clone() SharedGuard[Act, E, SE] {
	s.g.cell.count.IncShared()
	return SharedGuard[Act, E, SE]{g: &guard[Act, E, SE]{mode: modeShared, cell: s.g.cell}}
}

// Release relinquishes this guard's share of access. Call exactly once;
// calling it more than once corrupts the access counter.
func (s SharedGuard[Act, E, SE]) Release() {
	s.g.releaseShared()
}

// MutGuard grants exclusive read/write access to an actor's user value.
// It is not clonable.
type MutGuard[Act, E, SE any] struct {
	g *guard[Act, E, SE]
}

// Get returns the current user value for reading and writing.
func (m MutGuard[Act, E, SE]) Get() *Act {
	return m.g.cell.value
}

// Release relinquishes exclusive access. Call exactly once, and never
// after Delete (Delete already releases the actor in a different way,
// taking the value out from under the dispatcher rather than publishing
// writes back through it).
func (m MutGuard[Act, E, SE]) Release() {
	m.g.releaseExclusive()
}

// Downgrade converts this exclusive guard into a shared guard in place:
// it announces the downgrade to the dispatch task, wakes it, and returns
// a SharedGuard backed by the same underlying handle. No new guard is
// allocated, and the access counter is untouched (it stays at 1; the
// guard still holds one access slot, now under shared semantics, which is
// consistent because no other shared guard can be minted until the
// dispatch task observes the mode change and moves Exclusive to Shared).
//
// Call Downgrade at most once; afterwards treat the receiver as consumed
// and use only the returned SharedGuard.
func (m MutGuard[Act, E, SE]) Downgrade() SharedGuard[Act, E, SE] {
	m.g.cell.mode.Set(access.Downgrade)
	m.g.cell.wake.wake()
	m.g.mode = modeShared
	return SharedGuard[Act, E, SE]{g: m.g}
}

// Delete terminates the actor. It sends end on the actor's end-signal
// stream, takes the user value out of the shared slot and moves ownership
// of it to the caller, and announces the delete to the dispatch task. No
// handler of this actor runs after Delete returns to its caller.
//
// A failed end-signal send (the receiver is already gone — e.g. this
// actor is a subordinate whose supervisor has itself already terminated)
// is logged at trace level and otherwise ignored: deletion proceeds
// regardless, matching spec §4.3/§7.
func (m MutGuard[Act, E, SE]) Delete(end E) Act {
	if !m.g.cell.endSignalSend.Send(end) {
		log.Print("actor: end-signal send failed during delete, receiver is gone")
	}
	act := *m.g.cell.value
	m.g.cell.value = nil
	m.g.cell.mode.Set(access.Delete)
	m.g.cell.wake.wake()
	return act
}
