package condition

import (
	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

// Pulse fires repeatedly at a fixed interval while the input is held.
// InitialDelay, when positive, replaces the interval before the first
// repeat, giving keyboard auto-repeat shaping. TriggerLimit caps the number
// of pulses per actuation (0 means unlimited); once the limit is reached
// the state drops to None until release. De-actuation fully resets.
type Pulse struct {
	Actuation      float64
	Interval       float64
	InitialDelay   float64
	TriggerLimit   int
	TriggerOnStart bool

	active  bool
	elapsed float64
	wait    float64
	fired   int
}

func NewPulse(interval float64) *Pulse {
	return &Pulse{Actuation: DefaultActuation, Interval: interval, TriggerOnStart: true}
}

func (c *Pulse) Evaluate(_ action.Query, t core.Time, v action.Value) action.State {
	if !v.IsActuated(c.Actuation) {
		c.active = false
		c.elapsed = 0
		c.fired = 0
		return action.StateNone
	}
	if !c.active {
		c.active = true
		c.elapsed = 0
		c.fired = 0
		c.wait = c.Interval
		if c.InitialDelay > 0 {
			c.wait = c.InitialDelay
		}
		if c.TriggerOnStart {
			c.fired++
			return action.StateFired
		}
		return action.StateOngoing
	}
	if c.TriggerLimit > 0 && c.fired >= c.TriggerLimit {
		return action.StateNone
	}
	c.elapsed += t.DeltaSecs()
	if c.elapsed >= c.wait {
		c.elapsed -= c.wait
		c.wait = c.Interval
		c.fired++
		return action.StateFired
	}
	return action.StateOngoing
}

func (c *Pulse) Kind() Kind { return KindExplicit }

// Cooldown gates the actuation edge behind a recovery period. The timer
// advances only while the input is released and starts pre-elapsed, so the
// first press fires immediately.
type Cooldown struct {
	Actuation    float64
	CooldownTime float64

	elapsed  float64
	actuated bool
}

func NewCooldown(cooldownTime float64) *Cooldown {
	return &Cooldown{
		Actuation:    DefaultActuation,
		CooldownTime: cooldownTime,
		elapsed:      cooldownTime,
	}
}

func (c *Cooldown) Evaluate(_ action.Query, t core.Time, v action.Value) action.State {
	was := c.actuated
	c.actuated = v.IsActuated(c.Actuation)
	if !c.actuated {
		c.elapsed += t.DeltaSecs()
		return action.StateNone
	}
	if !was && c.elapsed >= c.CooldownTime {
		c.elapsed = 0
		return action.StateFired
	}
	return action.StateNone
}

func (c *Cooldown) Kind() Kind { return KindImplicit }
