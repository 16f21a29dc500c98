package engine

import (
	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/condition"
	"github.com/lixenwraith/inputflow/core"
)

// tracker combines condition results at one level into a single trigger
// state. Precedence is fixed: a Blocker returning None overrides
// everything; otherwise the result is the maximum over Explicit and
// Implicit contributions, capped at Ongoing while any Implicit condition
// has not fired.
type tracker struct {
	state            action.State
	found            bool
	foundImplicit    bool
	allImplicitFired bool
	blocked          bool
}

func newTracker() tracker {
	return tracker{allImplicitFired: true}
}

// evaluate runs one condition and folds its result in
func (tr *tracker) evaluate(c condition.Condition, q action.Query, t core.Time, v action.Value) {
	st := c.Evaluate(q, t, v)
	switch c.Kind() {
	case condition.KindBlocker:
		if st == action.StateNone {
			tr.blocked = true
		}
	case condition.KindImplicit:
		tr.found = true
		tr.foundImplicit = true
		if st != action.StateFired {
			tr.allImplicitFired = false
		}
		if st > tr.state {
			tr.state = st
		}
	default:
		tr.found = true
		if st > tr.state {
			tr.state = st
		}
	}
}

// add folds an already-combined state in as an explicit contribution
func (tr *tracker) add(st action.State) {
	tr.found = true
	if st > tr.state {
		tr.state = st
	}
}

// combined resolves the final state. With no conditions folded in, the
// value itself decides: any non-zero value fires (a zero-threshold down
// test).
func (tr *tracker) combined(v action.Value) action.State {
	if tr.blocked {
		return action.StateNone
	}
	if !tr.found {
		if v.IsActuated(0) {
			return action.StateFired
		}
		return action.StateNone
	}
	st := tr.state
	if tr.foundImplicit && !tr.allImplicitFired && st > action.StateOngoing {
		st = action.StateOngoing
	}
	return st
}
