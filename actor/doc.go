// Package actor implements a lightweight single-writer/multiple-reader
// actor runtime: each actor owns one user value that is dispatched to
// under either shared (read-only, fan-out) or exclusive (read-write)
// access, mediated by a single dispatch task per actor running on its own
// goroutine. Actors form supervision trees through CreateSubordinate; a
// subordinate's termination is delivered to its supervisor as an ordinary
// message.
package actor
