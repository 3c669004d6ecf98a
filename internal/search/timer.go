package search

import "time"

// nodePollInterval masks how often Triggered actually checks the wall
// clock and periodic hook, rather than on every single node visited — the
// time.Now() and function-pointer call are each cheap individually but add
// up across millions of nodes in the deepest iteration.
const nodePollInterval = 2048

// PeriodicFunction is invoked by MoveTimer's poll; returning true requests
// cancellation (e.g. the host detected external interrupt).
type PeriodicFunction func() bool

// MoveTimer is a cooperative, single-threaded deadline: Triggered reports
// true once the wall-clock deadline has passed or the periodic function
// signals cancel, per spec.md §4.6. Search consults it at the top of every
// move-loop iteration, not every node.
type MoveTimer struct {
	deadline  time.Time
	periodic  PeriodicFunction
	triggered bool
	visited   int
}

// NewMoveTimer starts a timer with the given wall-clock budget and an
// optional periodic cancellation hook (nil disables it).
func NewMoveTimer(budget time.Duration, periodic PeriodicFunction) *MoveTimer {
	return &MoveTimer{
		deadline: time.Now().Add(budget),
		periodic: periodic,
	}
}

// Triggered reports whether the timer has fired. Once true, it stays true
// for the remainder of this timer's life (a search in progress should not
// un-timeout partway through unwinding).
func (t *MoveTimer) Triggered() bool {
	if t.triggered {
		return true
	}
	t.visited++
	if t.visited%nodePollInterval != 0 {
		return false
	}
	if time.Now().After(t.deadline) {
		t.triggered = true
		return true
	}
	if t.periodic != nil && t.periodic() {
		t.triggered = true
		return true
	}
	return false
}

// ForceTrigger marks the timer as fired immediately, so the next Triggered
// call reports true without waiting for a poll.
func (t *MoveTimer) ForceTrigger() {
	t.triggered = true
}
