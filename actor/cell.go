package actor

import (
	"github.com/markinabyss/reflexactor/actor/internal/access"
	"github.com/markinabyss/reflexactor/actor/internal/unbounded"
)

// cell is the block shared, reference-counted in the ordinary Go-GC sense,
// between a dispatch task and every outstanding guard for one actor: the
// user value slot, the access counter and release-mode word, the wake
// handle, and the sender endpoints for propagating this actor's End and
// its subordinates' SubordinateEnd values.
//
// Rust reaches for an UnsafeCell plus raw pointers here because a guard
// only ever holds a borrow with a lifetime the compiler must be convinced
// is sound. Go guards are independent heap handles with no borrow checker
// to satisfy, and the protocol already guarantees a guard only touches
// value while it is the only thing entitled to. A plain pointer field,
// with no unsafe machinery, is the faithful Go shape.
type cell[Act, E, SE any] struct {
	value *Act // nil once an explicit Delete has taken it

	count access.Counter
	mode  access.ModeWord
	wake  *wakeHandle

	endSignalSend *unbounded.Chan[E]  // this actor's own End stream
	subordEndSend *unbounded.Chan[SE] // cloned into new subordinates as their endSignalSend
}
