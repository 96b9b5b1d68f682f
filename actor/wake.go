package actor

// wakeHandle lets a guard, released from any goroutine, re-schedule the
// dispatch task that minted it. It is the Go stand-in for capturing the
// async runtime's task waker at guard-construction time: each guard
// captures the dispatch task's wake handle when it is minted.
type wakeHandle struct {
	c chan struct{}
}

func newWakeHandle() *wakeHandle {
	return &wakeHandle{c: make(chan struct{}, 1)}
}

// wake schedules a wakeup. It never blocks and coalesces redundant
// wakeups fired before the dispatch task has had a chance to consume one.
func (w *wakeHandle) wake() {
	select {
	case w.c <- struct{}{}:
	default:
	}
}

func (w *wakeHandle) ch() <-chan struct{} {
	return w.c
}
