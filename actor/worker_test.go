package actor_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/markinabyss/reflexactor/actor"
)

type countingWorker struct {
	calls  atomic.Int32
	stopAt int32
}

func (w *countingWorker) DoWork(ctx actor.Context) actor.WorkerStatus {
	if w.calls.Add(1) >= w.stopAt {
		return actor.WorkerEnd
	}
	return actor.WorkerContinue
}

func TestNewRunsDoWorkUntilWorkerEnd(t *testing.T) {
	w := &countingWorker{stopAt: 5}
	a := actor.New(w)

	select {
	case <-a.Done():
	case <-time.After(time.Second):
		t.Fatal("Actor never completed")
	}
	require.EqualValues(t, 5, w.calls.Load())
}

type onStopWorker struct {
	stopped chan struct{}
}

func (w *onStopWorker) DoWork(ctx actor.Context) actor.WorkerStatus {
	<-ctx.Done()
	return actor.WorkerEnd
}

func (w *onStopWorker) OnStop() {
	close(w.stopped)
}

func TestNewRunsOnStopBeforeDone(t *testing.T) {
	w := &onStopWorker{stopped: make(chan struct{})}
	a := actor.New(w)
	a.Stop()

	select {
	case <-a.Done():
		select {
		case <-w.stopped:
		default:
			t.Fatal("OnStop must run before Done closes")
		}
	case <-time.After(time.Second):
		t.Fatal("Actor never stopped")
	}
}

func TestNewAlsoRunsOptOnStopHooks(t *testing.T) {
	var ran atomic.Bool
	a := actor.Idle(actor.OptOnStop(func() { ran.Store(true) }))
	a.Stop()

	select {
	case <-a.Done():
	case <-time.After(time.Second):
		t.Fatal("Idle never stopped")
	}
	require.True(t, ran.Load())
}

func TestCombineStopsAndWaitsOnEveryMember(t *testing.T) {
	a1 := actor.Idle()
	a2 := actor.Idle()
	a3 := actor.Idle()
	combined := actor.Combine(a1, a2, a3)

	combined.Stop()

	select {
	case <-combined.Done():
	case <-time.After(time.Second):
		t.Fatal("Combine never finished waiting on its members")
	}

	for _, a := range []actor.Actor{a1, a2, a3} {
		select {
		case <-a.Done():
		default:
			t.Fatal("Combine.Stop must stop every member")
		}
	}
}
