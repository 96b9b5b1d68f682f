package actor

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Context is the cooperative-cancellation handle a Worker's DoWork
// receives. It is deliberately narrower than context.Context: a dispatch
// task only ever needs to know whether it has been asked to stop.
type Context interface {
	// Done returns a channel that is closed once the worker has been
	// asked to stop.
	Done() <-chan struct{}
}

// WorkerStatus is returned by DoWork to tell the engine whether to call it
// again or to let the goroutine exit.
type WorkerStatus int

const (
	// WorkerContinue asks the engine to invoke DoWork again.
	WorkerContinue WorkerStatus = iota
	// WorkerEnd tells the engine there is no more work; its goroutine
	// returns after this call.
	WorkerEnd
)

// Worker is a unit of cooperative work run on its own goroutine by New.
// DoWork should do a bounded amount of work per call, including, where
// it has nothing to do, a single blocking wait on ctx.Done() or some other
// wake source, and report whether it wants to run again.
type Worker interface {
	DoWork(ctx Context) WorkerStatus
}

// OnStopper is implemented by workers that need to run cleanup once their
// goroutine is about to exit, whether DoWork returned WorkerEnd or the
// engine's Context was cancelled from the outside.
type OnStopper interface {
	OnStop()
}

// Actor is a handle to a worker's goroutine lifecycle: it can be asked to
// stop, and observed for completion.
type Actor interface {
	// Stop asks the actor's goroutine to exit; its next DoWork call (or an
	// in-progress blocking wait on ctx.Done()) observes this.
	Stop()
	// Done is closed once the actor's goroutine has returned.
	Done() <-chan struct{}
}

type workerContext struct {
	done <-chan struct{}
}

func (c workerContext) Done() <-chan struct{} { return c.done }

type engine struct {
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func (e *engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

func (e *engine) Done() <-chan struct{} { return e.done }

// New spawns w's goroutine, which calls w.DoWork repeatedly, passing a
// Context tied to the returned Actor's Stop, until DoWork returns
// WorkerEnd, then, if w implements OnStopper, calls w.OnStop before
// closing Done.
//
// Grounded on markInTheAbyss/go-actor's Actor/Worker/DoWork/Context shape
// (actor/mailbox.go: `Actor` embedded in `Mailbox`, `New(w)` spawning a
// worker's processing goroutine, `Idle(OptOnStop(...))`), generalized here
// into the small standalone engine this module's dispatch tasks run on.
// (internal/unbounded runs its forwarder on a plain goroutine of its own.)
func New(w Worker, opts ...Option) Actor {
	o := newOptions(opts)
	e := &engine{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	ctx := workerContext{done: e.stop}

	go func() {
		defer close(e.done)
		defer runOnStop(w, o)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if w.DoWork(ctx) == WorkerEnd {
				return
			}
		}
	}()

	return e
}

func runOnStop(w Worker, o *options) {
	if s, ok := w.(OnStopper); ok {
		s.OnStop()
	}
	for _, fn := range o.onStop {
		fn()
	}
}

// Idle is a no-op Actor: it does nothing until stopped, then runs any
// OnStop hooks registered via opts. Useful for wiring a Combine of actors
// whose only job is to tear something down together.
func Idle(opts ...Option) Actor {
	return New(idleWorker{}, opts...)
}

type idleWorker struct{}

func (idleWorker) DoWork(ctx Context) WorkerStatus {
	<-ctx.Done()
	return WorkerEnd
}

// Combine returns a single Actor whose Stop stops every actor in aa, and
// whose Done closes once all of them have.
func Combine(aa ...Actor) Actor {
	return &combined{actors: aa}
}

type combined struct {
	actors []Actor
}

func (c *combined) Stop() {
	for _, a := range c.actors {
		a.Stop()
	}
}

// Done fans in every member's completion concurrently rather than
// sequentially, so one slow-to-stop actor among many does not delay
// observing the ones that already finished; errgroup.Group is the pack's
// idiomatic shape for "wait on N goroutines" even though none of them can
// actually fail here.
func (c *combined) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		var g errgroup.Group
		for _, a := range c.actors {
			a := a
			g.Go(func() error {
				<-a.Done()
				return nil
			})
		}
		_ = g.Wait()
	}()
	return done
}
