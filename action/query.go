package action

import "github.com/lixenwraith/inputflow/core"

// Data is the read-only snapshot of one action visible to conditions and
// modifiers of sibling actions during evaluation
type Data struct {
	Value  Value
	State  State
	Events Events
	Timing Timing
}

// Query provides read access to the state of other actions while one action
// is being evaluated. Lookups of stale or foreign entities fail softly:
// callers treat a miss as StateNone.
type Query interface {
	Get(e core.Entity) (Data, bool)
}
