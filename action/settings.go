package action

// Accumulation defines how values from multiple bindings sharing the most
// significant state are combined into one action value
type Accumulation uint8

const (
	// Cumulative sums the values per axis, so opposing inputs cancel out.
	// Typical for WASD-style movement.
	Cumulative Accumulation = iota
	// MaxAbs takes, per axis, the value with the greatest magnitude
	MaxAbs
)

func (a Accumulation) String() string {
	switch a {
	case Cumulative:
		return "Cumulative"
	case MaxAbs:
		return "MaxAbs"
	default:
		return "Unknown"
	}
}

// Settings is the behavior configuration for an action
type Settings struct {
	// Accumulation selects how same-state binding values combine
	Accumulation Accumulation

	// RequireReset requires inputs to read inactive before the first
	// activation, and keeps consuming them after context removal or
	// deactivation until they release. Prevents a held key from instantly
	// re-triggering across a context switch.
	RequireReset bool

	// ConsumeInput marks this action's raw inputs unavailable to actions
	// evaluated later this tick, across all contexts of the schedule.
	// Inputs are consumed only when the final state is not None.
	ConsumeInput bool
}
