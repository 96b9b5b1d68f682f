package actor

// CreateSubordinate starts a new actor supervised by the actor currently
// held by supervisor: when the subordinate terminates through its
// handler's MutGuard.Delete, the end value is reported back as a
// SubordinateEnd message (of supervisor's own SupSE type) dispatched to the
// supervisor like any other message. Termination without an end value
// (orphan, Stop) sends no message; it is observable only through the
// returned SubordinateActor's Closed.
//
// supervisor must be the guard the supervisor's own handler was called
// with; CreateSubordinate reads its cell's subordinate-end stream to wire
// the new actor into it, exactly as the top-level actor's end-signal
// stream is wired in NewRoot.
func CreateSubordinate[SupAct, SupE, SupSE, SubAct, SubS, SubM, SubSE any](
	supervisor MutGuard[SupAct, SupE, SupSE],
	initial SubAct,
	handlers Handlers[SubAct, SubS, SubM, SupSE, SubSE],
	opts ...Option,
) (SubordinateActor, Mailbox[SubS, SubM]) {
	endSignalSend := supervisor.g.cell.subordEndSend

	state, mailboxCh, dropSend := newActor[SubAct, SubS, SubM, SupSE, SubSE](initial, handlers, endSignalSend, false, opts...)
	dispatch, mailbox := spawn(state, mailboxCh, dropSend)

	return SubordinateActor{Actor: dispatch}, mailbox
}
