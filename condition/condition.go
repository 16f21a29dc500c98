// Package condition implements trigger-state predicates evaluated against
// input values each tick. Conditions own their timers and edge-tracking
// state; all time comes from the injected tick delta.
package condition

import (
	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

// DefaultActuation is the magnitude threshold conditions use unless
// configured otherwise.
const DefaultActuation = 0.5

// Kind determines how a condition's result combines with its siblings.
type Kind uint8

const (
	// KindExplicit contributes its state directly to the combined maximum.
	KindExplicit Kind = iota
	// KindImplicit contributes to the maximum but caps the combined result
	// at Ongoing unless it returned Fired itself.
	KindImplicit
	// KindBlocker forces the combined result to None when it returns None,
	// overriding everything else. A non-None return abstains.
	KindBlocker
)

func (k Kind) String() string {
	switch k {
	case KindExplicit:
		return "Explicit"
	case KindImplicit:
		return "Implicit"
	case KindBlocker:
		return "Blocker"
	}
	return "Unknown"
}

// Condition turns a value into a trigger state. Implementations may keep
// internal state between calls but must never block.
type Condition interface {
	Evaluate(actions action.Query, t core.Time, v action.Value) action.State
	Kind() Kind
}

// Down fires while the value is actuated. Stateless.
type Down struct {
	Actuation float64
}

func NewDown() *Down { return &Down{Actuation: DefaultActuation} }

func (c *Down) Evaluate(_ action.Query, _ core.Time, v action.Value) action.State {
	if v.IsActuated(c.Actuation) {
		return action.StateFired
	}
	return action.StateNone
}

func (c *Down) Kind() Kind { return KindExplicit }

// Press fires exactly once on the actuation edge.
type Press struct {
	Actuation float64

	actuated bool
}

func NewPress() *Press { return &Press{Actuation: DefaultActuation} }

func (c *Press) Evaluate(_ action.Query, _ core.Time, v action.Value) action.State {
	was := c.actuated
	c.actuated = v.IsActuated(c.Actuation)
	if c.actuated && !was {
		return action.StateFired
	}
	return action.StateNone
}

func (c *Press) Kind() Kind { return KindExplicit }

// Release reports Ongoing while actuated and fires once on the
// de-actuation edge.
type Release struct {
	Actuation float64

	actuated bool
}

func NewRelease() *Release { return &Release{Actuation: DefaultActuation} }

func (c *Release) Evaluate(_ action.Query, _ core.Time, v action.Value) action.State {
	was := c.actuated
	c.actuated = v.IsActuated(c.Actuation)
	if c.actuated {
		return action.StateOngoing
	}
	if was {
		return action.StateFired
	}
	return action.StateNone
}

func (c *Release) Kind() Kind { return KindExplicit }

// Toggle flips on each actuation edge and fires the whole time it is on,
// including while the input is released.
type Toggle struct {
	Actuation float64

	actuated bool
	on       bool
}

func NewToggle() *Toggle { return &Toggle{Actuation: DefaultActuation} }

func (c *Toggle) Evaluate(_ action.Query, _ core.Time, v action.Value) action.State {
	was := c.actuated
	c.actuated = v.IsActuated(c.Actuation)
	if c.actuated && !was {
		c.on = !c.on
	}
	if c.on {
		return action.StateFired
	}
	return action.StateNone
}

func (c *Toggle) Kind() Kind { return KindExplicit }
