package condition

import (
	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

// Chord inherits the maximum state of the listed sibling actions, capped at
// Ongoing unless every one of them is Fired. Missing actions are skipped.
type Chord struct {
	Actions []core.Entity
}

func NewChord(actions ...core.Entity) *Chord {
	return &Chord{Actions: actions}
}

func (c *Chord) Evaluate(q action.Query, _ core.Time, _ action.Value) action.State {
	max := action.StateNone
	allFired := len(c.Actions) > 0
	for _, e := range c.Actions {
		d, ok := q.Get(e)
		if !ok {
			allFired = false
			continue
		}
		if d.State > max {
			max = d.State
		}
		if d.State != action.StateFired {
			allFired = false
		}
	}
	if !allFired && max > action.StateOngoing {
		max = action.StateOngoing
	}
	return max
}

func (c *Chord) Kind() Kind { return KindImplicit }

// BlockBy suppresses the host action while any listed sibling action is
// active. It abstains (returns Fired) otherwise.
type BlockBy struct {
	Actions []core.Entity
}

func NewBlockBy(actions ...core.Entity) *BlockBy {
	return &BlockBy{Actions: actions}
}

func (c *BlockBy) Evaluate(q action.Query, _ core.Time, _ action.Value) action.State {
	for _, e := range c.Actions {
		if d, ok := q.Get(e); ok && d.State != action.StateNone {
			return action.StateNone
		}
	}
	return action.StateFired
}

func (c *BlockBy) Kind() Kind { return KindBlocker }

// ComboStep names a sibling action and the lifecycle events that complete
// the step. A zero Events defaults to Fire. Timeout bounds the time allowed
// to complete the step, counted from the previous advance; the first step
// is never timed.
type ComboStep struct {
	Action  core.Entity
	Events  action.Events
	Timeout float64
}

func (s ComboStep) events() action.Events {
	if s.Events == 0 {
		return action.EventFire
	}
	return s.Events
}

// ComboCancel names a sibling action whose events reset the sequence. A
// zero Events defaults to Ongoing|Fire.
type ComboCancel struct {
	Action core.Entity
	Events action.Events
}

func (c ComboCancel) events() action.Events {
	if c.Events == 0 {
		return action.EventOngoing | action.EventFire
	}
	return c.Events
}

// Combo matches an ordered sequence of sibling action events. Out-of-order
// step events, cancel-action events, and per-step timeouts reset the
// sequence; completing the final step fires for one tick. A cancel entry
// naming the current step's action is ignored.
type Combo struct {
	Steps   []ComboStep
	Cancels []ComboCancel

	step    int
	elapsed float64
}

func NewCombo(steps []ComboStep, cancels ...ComboCancel) *Combo {
	return &Combo{Steps: steps, Cancels: cancels}
}

func (c *Combo) reset() {
	c.step = 0
	c.elapsed = 0
}

func (c *Combo) Evaluate(q action.Query, t core.Time, _ action.Value) action.State {
	if len(c.Steps) == 0 {
		return action.StateNone
	}
	if c.step > 0 {
		c.elapsed += t.DeltaSecs()
		if timeout := c.Steps[c.step].Timeout; timeout > 0 && c.elapsed > timeout {
			c.reset()
		}
	}
	cur := c.Steps[c.step]
	for _, cancel := range c.Cancels {
		if cancel.Action == cur.Action {
			continue
		}
		if d, ok := q.Get(cancel.Action); ok && d.Events.Intersects(cancel.events()) {
			c.reset()
			cur = c.Steps[0]
		}
	}
	for i, s := range c.Steps {
		if i == c.step || s.Action == cur.Action {
			continue
		}
		if d, ok := q.Get(s.Action); ok && d.Events.Intersects(s.events()) {
			c.reset()
			cur = c.Steps[0]
		}
	}
	if d, ok := q.Get(cur.Action); ok && d.Events.Intersects(cur.events()) {
		c.step++
		c.elapsed = 0
		if c.step == len(c.Steps) {
			c.reset()
			return action.StateFired
		}
	}
	if c.step > 0 {
		return action.StateOngoing
	}
	if d, ok := q.Get(c.Steps[0].Action); ok && d.State > action.StateNone {
		return action.StateOngoing
	}
	return action.StateNone
}

func (c *Combo) Kind() Kind { return KindImplicit }
