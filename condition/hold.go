package condition

import (
	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

// Hold reports Ongoing while actuated, then fires once the hold time has
// elapsed. With OneShot it fires for a single tick and stays None until the
// input is released. De-actuation before completion resets the timer.
type Hold struct {
	Actuation float64
	HoldTime  float64
	OneShot   bool

	elapsed float64
	fired   bool
}

func NewHold(holdTime float64) *Hold {
	return &Hold{Actuation: DefaultActuation, HoldTime: holdTime}
}

func (c *Hold) Evaluate(_ action.Query, t core.Time, v action.Value) action.State {
	if !v.IsActuated(c.Actuation) {
		c.elapsed = 0
		c.fired = false
		return action.StateNone
	}
	c.elapsed += t.DeltaSecs()
	if c.elapsed < c.HoldTime {
		return action.StateOngoing
	}
	if c.OneShot && c.fired {
		return action.StateNone
	}
	c.fired = true
	return action.StateFired
}

func (c *Hold) Kind() Kind { return KindExplicit }

// HoldAndRelease fires on release only when the input was held at least
// HoldTime. Releasing early yields None.
type HoldAndRelease struct {
	Actuation float64
	HoldTime  float64

	elapsed  float64
	actuated bool
}

func NewHoldAndRelease(holdTime float64) *HoldAndRelease {
	return &HoldAndRelease{Actuation: DefaultActuation, HoldTime: holdTime}
}

func (c *HoldAndRelease) Evaluate(_ action.Query, t core.Time, v action.Value) action.State {
	if v.IsActuated(c.Actuation) {
		c.actuated = true
		c.elapsed += t.DeltaSecs()
		return action.StateOngoing
	}
	held := c.actuated
	reached := c.elapsed >= c.HoldTime
	c.actuated = false
	c.elapsed = 0
	if held && reached {
		return action.StateFired
	}
	return action.StateNone
}

func (c *HoldAndRelease) Kind() Kind { return KindExplicit }

// Tap fires when the input is released within ReleaseTime of being pressed.
// Holding past the window suppresses the fire entirely.
type Tap struct {
	Actuation   float64
	ReleaseTime float64

	elapsed  float64
	actuated bool
}

func NewTap(releaseTime float64) *Tap {
	return &Tap{Actuation: DefaultActuation, ReleaseTime: releaseTime}
}

func (c *Tap) Evaluate(_ action.Query, t core.Time, v action.Value) action.State {
	was := c.actuated
	c.actuated = v.IsActuated(c.Actuation)
	if c.actuated && !was {
		c.elapsed = 0
	}
	if c.actuated {
		c.elapsed += t.DeltaSecs()
		if c.elapsed > c.ReleaseTime {
			return action.StateNone
		}
		return action.StateOngoing
	}
	quick := was && c.elapsed <= c.ReleaseTime
	c.elapsed = 0
	if quick {
		return action.StateFired
	}
	return action.StateNone
}

func (c *Tap) Kind() Kind { return KindExplicit }
