package action

// State is the trigger lifecycle of an action.
// Ordering matters: a greater state dominates during binding combination.
type State uint8

const (
	// StateNone means no condition is triggered
	StateNone State = iota
	// StateOngoing means a condition started triggering but has not finished,
	// e.g. a Hold condition before its duration elapses
	StateOngoing
	// StateFired means the condition has been met this tick
	StateFired
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateOngoing:
		return "Ongoing"
	case StateFired:
		return "Fired"
	default:
		return "Unknown"
	}
}

// Timing accumulates how long an action has been active
type Timing struct {
	// ElapsedSecs is time spent in Ongoing plus Fired
	ElapsedSecs float64
	// FiredSecs is time spent in Fired only
	FiredSecs float64
}

// Update advances the timers based on the given delta and state.
// None resets both accumulators.
func (t *Timing) Update(deltaSecs float64, state State) {
	switch state {
	case StateNone:
		t.ElapsedSecs = 0
		t.FiredSecs = 0
	case StateOngoing:
		t.ElapsedSecs += deltaSecs
		t.FiredSecs = 0
	case StateFired:
		t.ElapsedSecs += deltaSecs
		t.FiredSecs += deltaSecs
	}
}
