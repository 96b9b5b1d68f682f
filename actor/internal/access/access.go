// Package access implements the atomic access-count / release-mode
// protocol that synchronizes a dispatch task with the guards it hands out.
//
// The counter and mode word are the only state shared, lock-free, between
// a dispatch task and outstanding guards; everything else about an actor's
// access control (the dispatcher-private Status) lives on the dispatch
// task alone.
package access

import "sync/atomic"

// Status is the dispatcher-private view of current access. Unlike Counter
// and ModeWord, it is never touched by a guard.
type Status int

const (
	Available Status = iota
	Shared
	Exclusive
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Shared:
		return "shared"
	case Exclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// Mode is the release mode a guard announces to the dispatcher on a
// non-default release.
type Mode uint32

const (
	Normal Mode = iota
	Downgrade
	Delete
)

// ModeWord is the shared, atomic release-mode cell. A guard stores into it
// with Set; the dispatcher reads-and-clears it with SwapNormal at the top
// of every attempt.
type ModeWord struct {
	v atomic.Uint32
}

// Set stores mode, overwriting whatever was there. Guards call this from
// Downgrade and Delete; relaxed is sufficient since the accompanying
// counter operation (or, for Delete, the wake) carries the synchronizing
// edge.
func (m *ModeWord) Set(mode Mode) {
	m.v.Store(uint32(mode))
}

// SwapNormal resets the word to Normal and returns the mode that was
// stored beforehand, implementing the dispatcher's read-and-clear step.
func (m *ModeWord) SwapNormal() Mode {
	return Mode(m.v.Swap(uint32(Normal)))
}

// Counter is the atomic count of guards currently aliasing an actor's user
// value.
type Counter struct {
	v atomic.Uint32
}

// IncShared performs a shared guard's fetch-add, used both when minting a
// fresh shared guard and when cloning one.
func (c *Counter) IncShared() {
	c.v.Add(1)
}

// DecShared performs a shared guard's fetch-sub and reports whether this
// release brought the counter to zero (in which case the dispatch task
// must be woken).
func (c *Counter) DecShared() (droppedToZero bool) {
	return c.v.Add(^uint32(0)) == 0
}

// AcquireExclusive swaps the counter from 0 to 1 to mint an exclusive
// guard. It panics if the previous value was not 0: that would mean an
// exclusive guard was minted while some other guard was already alive, a
// protocol invariant violation rather than a recoverable error.
func (c *Counter) AcquireExclusive() {
	if prev := c.v.Swap(1); prev != 0 {
		panic("access: exclusive guard minted with non-zero access count")
	}
}

// ReleaseExclusive swaps the counter back to 0 on an exclusive guard's
// release. It panics if the previous value was not 1.
func (c *Counter) ReleaseExclusive() {
	if prev := c.v.Swap(0); prev != 1 {
		panic("access: exclusive guard released with access count != 1")
	}
}

// Load reads the current counter value. The dispatcher uses this to
// resync its Status back to Available once every guard has released;
// sync/atomic loads in Go carry sequentially-consistent ordering, which
// subsumes the acquire ordering the protocol requires here.
func (c *Counter) Load() uint32 {
	return c.v.Load()
}
