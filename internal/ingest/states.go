// Package ingest runs the fetch → dedup → classify → persist pipeline.
//
// Each candidate posting moves through:
//
//	PENDING ──► FETCHED ──► DEDUPED ──► VALIDATED ──► TAGGED ──► PERSISTED
//	               │           │            │            │
//	               ▼           ▼            ▼            ▼
//	      SKIPPED_DUPLICATE SKIPPED_    SKIPPED_    SKIPPED_DUPLICATE
//	                        INVALID     BOUNCER
//
// PERSISTED and the SKIPPED_* states are terminal.
package ingest

import "fmt"

// State is a candidate posting's position in the pipeline.
type State string

const (
	StatePending          State = "PENDING"
	StateFetched          State = "FETCHED"
	StateDeduped          State = "DEDUPED"
	StateValidated        State = "VALIDATED"
	StateTagged           State = "TAGGED"
	StatePersisted        State = "PERSISTED"
	StateSkippedDuplicate State = "SKIPPED_DUPLICATE"
	StateSkippedInvalid   State = "SKIPPED_INVALID"
	StateSkippedBouncer   State = "SKIPPED_BOUNCER"
)

// validTransitions lists every allowed (from → to) pair. TAGGED may still
// end as a duplicate when the store's uniqueness constraint rejects the
// insert.
var validTransitions = map[State][]State{
	StatePending:   {StateFetched},
	StateFetched:   {StateDeduped, StateSkippedDuplicate},
	StateDeduped:   {StateValidated, StateSkippedInvalid},
	StateValidated: {StateTagged, StateSkippedBouncer},
	StateTagged:    {StatePersisted, StateSkippedDuplicate},
}

// ParseState converts a raw string to a State, returning an error for
// unknown values.
func ParseState(s string) (State, error) {
	st := State(s)
	switch st {
	case StatePending, StateFetched, StateDeduped, StateValidated, StateTagged,
		StatePersisted, StateSkippedDuplicate, StateSkippedInvalid, StateSkippedBouncer:
		return st, nil
	}
	return "", fmt.Errorf("unknown pipeline state %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions.
func IsTerminal(s State) bool {
	_, ok := validTransitions[s]
	return !ok
}

// candidate tracks one posting through the state machine.
type candidate struct {
	state State
}

func (c *candidate) move(to State) error {
	if !IsTransitionAllowed(c.state, to) {
		return fmt.Errorf("illegal pipeline transition %s → %s", c.state, to)
	}
	c.state = to
	return nil
}
