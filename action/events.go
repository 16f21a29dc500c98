package action

// Events is a bitset of lifecycle events derived from a state transition
type Events uint8

const (
	// EventStart marks a transition out of None
	EventStart Events = 1 << iota
	// EventOngoing marks a tick spent in Ongoing
	EventOngoing
	// EventFire marks a tick spent in Fired
	EventFire
	// EventCancel marks a transition Ongoing -> None
	EventCancel
	// EventComplete marks a transition Fired -> None
	EventComplete
)

// kindOrder fixes the emission order within one tick
var kindOrder = [...]Events{EventStart, EventOngoing, EventFire, EventCancel, EventComplete}

// NewEvents derives the event bitset for a state transition.
// The table is total over all nine (previous, current) pairs:
//
//	None    -> None    : -
//	None    -> Ongoing : Start | Ongoing
//	None    -> Fired   : Start | Fire
//	Ongoing -> None    : Cancel
//	Ongoing -> Ongoing : Ongoing
//	Ongoing -> Fired   : Fire
//	Fired   -> None    : Complete
//	Fired   -> Ongoing : Ongoing
//	Fired   -> Fired   : Fire
func NewEvents(previous, current State) Events {
	switch current {
	case StateNone:
		switch previous {
		case StateOngoing:
			return EventCancel
		case StateFired:
			return EventComplete
		}
		return 0
	case StateOngoing:
		if previous == StateNone {
			return EventStart | EventOngoing
		}
		return EventOngoing
	default:
		if previous == StateNone {
			return EventStart | EventFire
		}
		return EventFire
	}
}

// Contains reports whether all events in the given set are present
func (e Events) Contains(other Events) bool {
	return e&other == other
}

// Intersects reports whether any event in the given set is present
func (e Events) Intersects(other Events) bool {
	return e&other != 0
}

// Kinds returns the individual events in emission order
func (e Events) Kinds() []Events {
	if e == 0 {
		return nil
	}
	kinds := make([]Events, 0, 2)
	for _, k := range kindOrder {
		if e&k != 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (e Events) String() string {
	if e == 0 {
		return "None"
	}
	names := map[Events]string{
		EventStart:    "Start",
		EventOngoing:  "Ongoing",
		EventFire:     "Fire",
		EventCancel:   "Cancel",
		EventComplete: "Complete",
	}
	s := ""
	for _, k := range kindOrder {
		if e&k == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += names[k]
	}
	return s
}
