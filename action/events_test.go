package action

import (
	"math"
	"testing"
)

func TestNewEventsAllTransitions(t *testing.T) {
	cases := []struct {
		prev, curr State
		want       Events
	}{
		{StateNone, StateNone, 0},
		{StateNone, StateOngoing, EventStart | EventOngoing},
		{StateNone, StateFired, EventStart | EventFire},
		{StateOngoing, StateNone, EventCancel},
		{StateOngoing, StateOngoing, EventOngoing},
		{StateOngoing, StateFired, EventFire},
		{StateFired, StateNone, EventComplete},
		{StateFired, StateOngoing, EventOngoing},
		{StateFired, StateFired, EventFire},
	}
	for _, c := range cases {
		if got := NewEvents(c.prev, c.curr); got != c.want {
			t.Errorf("NewEvents(%v, %v) = %v, want %v", c.prev, c.curr, got, c.want)
		}
	}
}

func TestEventsKindsOrder(t *testing.T) {
	kinds := (EventFire | EventStart).Kinds()
	if len(kinds) != 2 || kinds[0] != EventStart || kinds[1] != EventFire {
		t.Errorf("kinds = %v, want [Start Fire]", kinds)
	}
	if got := Events(0).Kinds(); got != nil {
		t.Errorf("empty kinds = %v, want nil", got)
	}
}

func TestTiming(t *testing.T) {
	var tm Timing
	tm.Update(0.1, StateOngoing)
	tm.Update(0.1, StateOngoing)
	if tm.ElapsedSecs != 0.2 || tm.FiredSecs != 0 {
		t.Errorf("ongoing timing = %+v", tm)
	}
	tm.Update(0.1, StateFired)
	if math.Abs(tm.ElapsedSecs-0.3) > 1e-9 {
		t.Errorf("fired elapsed = %v", tm.ElapsedSecs)
	}
	if math.Abs(tm.FiredSecs-0.1) > 1e-9 {
		t.Errorf("fired secs = %v", tm.FiredSecs)
	}
	tm.Update(0.1, StateNone)
	if tm.ElapsedSecs != 0 || tm.FiredSecs != 0 {
		t.Errorf("reset timing = %+v", tm)
	}
}
