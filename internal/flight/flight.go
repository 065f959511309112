// Package flight models the single-flight request guard used across the
// application: at most one outstanding asynchronous operation of a given
// kind, with attempts during flight dropped rather than queued.
package flight

import "sync"

// State is the lifecycle position of a guarded operation.
type State string

const (
	// StateIdle means no operation has started yet.
	StateIdle State = "idle"
	// StatePending means an operation is in flight.
	StatePending State = "pending"
	// StateSucceeded means the last operation completed successfully.
	StateSucceeded State = "succeeded"
	// StateFailed means the last operation completed with an error.
	StateFailed State = "failed"
)

// Gate guards a single-flight operation. Begin is only legal from Idle or a
// terminal state; a Begin while Pending returns false and the caller must
// drop the attempt.
type Gate struct {
	mu    sync.Mutex
	state State
}

// NewGate returns a gate in the Idle state.
func NewGate() *Gate {
	return &Gate{state: StateIdle}
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Pending reports whether an operation is in flight.
func (g *Gate) Pending() bool {
	return g.State() == StatePending
}

// Begin transitions to Pending. Returns false if an operation is already in
// flight, in which case the caller drops the attempt.
func (g *Gate) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StatePending {
		return false
	}
	g.state = StatePending
	return true
}

// Finish records the outcome of the in-flight operation. Finishing a gate
// that is not Pending is a no-op, so callers may defer it unconditionally.
func (g *Gate) Finish(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StatePending {
		return
	}
	if err != nil {
		g.state = StateFailed
	} else {
		g.state = StateSucceeded
	}
}

// Reset returns the gate to Idle. Only legal outside of flight; a Reset
// while Pending is ignored.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StatePending {
		return
	}
	g.state = StateIdle
}
