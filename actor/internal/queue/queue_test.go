package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueuePrioritizesSubordEndOverMailbox(t *testing.T) {
	subordEnd := make(chan string, 1)
	mailbox := make(chan string, 1)
	drop := make(chan struct{})

	q := New[string, string](drop, subordEnd, mailbox)

	mailbox <- "m1"
	subordEnd <- "se1"

	entry, ok := q.Next(nil)
	require.True(t, ok)
	require.Equal(t, KindSubordEnd, entry.Kind)
	require.Equal(t, "se1", entry.SubordEnd)

	entry, ok = q.Next(nil)
	require.True(t, ok)
	require.Equal(t, KindMailbox, entry.Kind)
	require.Equal(t, "m1", entry.Mailbox)
}

func TestQueueDropSignalTerminates(t *testing.T) {
	subordEnd := make(chan string)
	mailbox := make(chan string, 1)
	drop := make(chan struct{})

	q := New[string, string](drop, subordEnd, mailbox)
	mailbox <- "m1"
	close(drop)

	_, ok := q.Next(nil)
	require.False(t, ok, "a fired drop signal must end the queue even with a mailbox entry pending")
}

func TestQueueTerminatesOnceBothSourcesClose(t *testing.T) {
	subordEnd := make(chan string)
	mailbox := make(chan string)
	drop := make(chan struct{})

	q := New[string, string](drop, subordEnd, mailbox)

	done := make(chan struct{})
	close(subordEnd)
	close(mailbox)

	entry, ok := q.Next(done)
	require.False(t, ok)
	require.Zero(t, entry)
}

func TestQueueNextBlocksUntilEntryArrives(t *testing.T) {
	subordEnd := make(chan string)
	mailbox := make(chan string)
	drop := make(chan struct{})

	q := New[string, string](drop, subordEnd, mailbox)

	result := make(chan Entry[string, string], 1)
	go func() {
		entry, ok := q.Next(nil)
		require.True(t, ok)
		result <- entry
	}()

	time.Sleep(10 * time.Millisecond)
	mailbox <- "late"

	select {
	case entry := <-result:
		require.Equal(t, "late", entry.Mailbox)
	case <-time.After(time.Second):
		t.Fatal("Next never returned after a mailbox send")
	}
}

func TestQueueNextHonorsDone(t *testing.T) {
	subordEnd := make(chan string)
	mailbox := make(chan string)
	drop := make(chan struct{})

	q := New[string, string](drop, subordEnd, mailbox)

	done := make(chan struct{})
	close(done)

	_, ok := q.Next(done)
	require.False(t, ok)
}
