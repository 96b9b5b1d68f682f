package actor

// SubordinateActor is the dispatch task handle CreateSubordinate returns.
// Its goroutine lifecycle is independent of its supervisor: nothing needs
// to wait on it directly, since normal termination already reaches the
// supervisor through a SubordinateEnd message. Closed exists for the case
// a handler wants to detect termination that did not go through an
// explicit end value (the subordinate was orphaned, or its mailbox was
// closed out from under it).
type SubordinateActor struct {
	Actor
}

// Closed is closed once the subordinate's dispatch task has exited,
// regardless of whether that happened through its handler's Delete, an
// orphan, or its mailbox closing.
func (s SubordinateActor) Closed() <-chan struct{} {
	return s.Done()
}
