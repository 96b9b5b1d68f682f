package actor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/markinabyss/reflexactor/actor"
)

type noopActor struct{}

func noopHandlers() actor.Handlers[noopActor, string, int, string, string] {
	return actor.Handlers[noopActor, string, int, string, string]{
		Shared:         func(g actor.SharedGuard[noopActor, string, string], msg string) { g.Release() },
		Exclusive:      func(g actor.MutGuard[noopActor, string, string], msg int) { g.Release() },
		SubordinateEnd: func(g actor.MutGuard[noopActor, string, string], se string) { g.Release() },
	}
}

func TestMailboxOrphansOnlyOnceEveryOwningCloneIsClosed(t *testing.T) {
	root := actor.NewRoot[noopActor, string, int, string, string](noopActor{}, noopHandlers())
	mb := root.Mailbox()
	clone := mb.Clone()

	mb.Close()

	require.False(t, clone.IsClosed(), "one outstanding owning clone must keep the actor alive")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := root.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded, "the actor must still be running")

	clone.Close()

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	_, err = root.Wait(ctx2)
	require.ErrorIs(t, err, actor.ErrAbnormalClose, "closing the last owning clone must orphan the actor")
}

func TestDowngradedMailboxNeverKeepsTheActorAlive(t *testing.T) {
	root := actor.NewRoot[noopActor, string, int, string, string](noopActor{}, noopHandlers())
	mb := root.Mailbox()
	weak := mb.Downgrade()

	require.False(t, weak.IsClosed())

	mb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := root.Wait(ctx)
	require.ErrorIs(t, err, actor.ErrAbnormalClose)

	require.True(t, weak.IsClosed(), "a weak handle must observe the actor's termination")
	weak.Close() // no-op, must not panic
}

func TestMailboxSendOnDeadActorNeverFails(t *testing.T) {
	root := actor.NewRoot[noopActor, string, int, string, string](noopActor{}, noopHandlers())
	mb := root.Mailbox()
	root.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.Eventually(t, mb.IsClosed, time.Second, time.Millisecond, "actor never observed Stop")
	require.NoError(t, mb.Send(ctx, actor.Exclusive[string, int](1)), "Send must not surface the dead actor as an error")

	_, ok := mb.SendNow(actor.Exclusive[string, int](2))
	require.True(t, ok, "SendNow must report a dead actor as silently accepted, not backpressure")

	mb.Close()
}

func TestMailboxSendNowReportsBackpressure(t *testing.T) {
	entered := make(chan struct{})
	proceed := make(chan struct{})
	var once sync.Once

	handlers := actor.Handlers[noopActor, string, int, string, string]{
		Shared: func(g actor.SharedGuard[noopActor, string, string], msg string) { g.Release() },
		Exclusive: func(g actor.MutGuard[noopActor, string, string], msg int) {
			once.Do(func() { close(entered) })
			<-proceed
			g.Release()
		},
		SubordinateEnd: func(g actor.MutGuard[noopActor, string, string], se string) { g.Release() },
	}

	root := actor.NewRoot[noopActor, string, int, string, string](noopActor{}, handlers, actor.OptMailboxCapacity(1))
	mb := root.Mailbox()
	defer mb.Close()
	defer root.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, mb.Send(ctx, actor.Exclusive[string, int](1)))

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("exclusive handler never entered")
	}

	// The dispatch task is now blocked inside the handler above, having
	// already drained the bounded channel's one slot.
	_, ok := mb.SendNow(actor.Exclusive[string, int](2))
	require.True(t, ok, "a free slot must accept a message immediately")

	_, ok = mb.SendNow(actor.Exclusive[string, int](3))
	require.False(t, ok, "a full bounded channel must report backpressure instead of blocking")

	close(proceed)
}
