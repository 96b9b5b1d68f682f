package actor

import "errors"

// ErrAbnormalClose is returned by RootActor.Wait (and reported through
// RootActor.Result) when the actor's dispatch task terminated without
// producing an End value, because its mailbox was closed out from under
// it, or it was orphaned, rather than deleted through a MutGuard.
var ErrAbnormalClose = errors.New("actor: abnormal close, no end value produced")
