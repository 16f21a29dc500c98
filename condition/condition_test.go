package condition

import (
	"testing"
	"time"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

type fakeQuery map[core.Entity]action.Data

func (f fakeQuery) Get(e core.Entity) (action.Data, bool) {
	d, ok := f[e]
	return d, ok
}

var (
	step100 = core.NewTime(100 * time.Millisecond)
	pressed = action.Bool(true)
	idle    = action.Bool(false)
)

func TestDown(t *testing.T) {
	c := NewDown()
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("actuated = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateNone {
		t.Errorf("idle = %v, want None", got)
	}
	if got := c.Evaluate(nil, step100, action.Axis1D(0.3)); got != action.StateNone {
		t.Errorf("below threshold = %v, want None", got)
	}
}

func TestPressRisingEdgeOnly(t *testing.T) {
	c := NewPress()
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("edge = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, pressed); got != action.StateNone {
		t.Errorf("held = %v, want None", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateNone {
		t.Errorf("released = %v, want None", got)
	}
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("second edge = %v, want Fired", got)
	}
}

func TestRelease(t *testing.T) {
	c := NewRelease()
	if got := c.Evaluate(nil, step100, pressed); got != action.StateOngoing {
		t.Errorf("held = %v, want Ongoing", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateFired {
		t.Errorf("release edge = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateNone {
		t.Errorf("idle = %v, want None", got)
	}
}

func TestHold(t *testing.T) {
	c := NewHold(0.25)
	for i := 0; i < 2; i++ {
		if got := c.Evaluate(nil, step100, pressed); got != action.StateOngoing {
			t.Errorf("tick %d = %v, want Ongoing", i, got)
		}
	}
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("past threshold = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("still held = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateNone {
		t.Errorf("released = %v, want None", got)
	}
	// timer restarted
	if got := c.Evaluate(nil, step100, pressed); got != action.StateOngoing {
		t.Errorf("re-pressed = %v, want Ongoing", got)
	}
}

func TestHoldReleasedEarlyNeverFires(t *testing.T) {
	c := NewHold(1.0)
	c.Evaluate(nil, step100, pressed)
	c.Evaluate(nil, step100, pressed)
	if got := c.Evaluate(nil, step100, idle); got != action.StateNone {
		t.Errorf("early release = %v, want None", got)
	}
}

func TestHoldOneShot(t *testing.T) {
	c := NewHold(0.15)
	c.OneShot = true
	c.Evaluate(nil, step100, pressed)
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("threshold = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, pressed); got != action.StateNone {
		t.Errorf("after one shot = %v, want None", got)
	}
	c.Evaluate(nil, step100, idle)
	c.Evaluate(nil, step100, pressed)
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("after release cycle = %v, want Fired", got)
	}
}

func TestHoldAndRelease(t *testing.T) {
	c := NewHoldAndRelease(0.25)
	for i := 0; i < 3; i++ {
		if got := c.Evaluate(nil, step100, pressed); got != action.StateOngoing {
			t.Errorf("tick %d = %v, want Ongoing", i, got)
		}
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateFired {
		t.Errorf("release past threshold = %v, want Fired", got)
	}

	// releasing early yields nothing
	c.Evaluate(nil, step100, pressed)
	if got := c.Evaluate(nil, step100, idle); got != action.StateNone {
		t.Errorf("early release = %v, want None", got)
	}
}

func TestTap(t *testing.T) {
	c := NewTap(0.25)
	if got := c.Evaluate(nil, step100, pressed); got != action.StateOngoing {
		t.Errorf("quick press = %v, want Ongoing", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateFired {
		t.Errorf("quick release = %v, want Fired", got)
	}

	// held past the window
	for i := 0; i < 2; i++ {
		c.Evaluate(nil, step100, pressed)
	}
	if got := c.Evaluate(nil, step100, pressed); got != action.StateNone {
		t.Errorf("held too long = %v, want None", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateNone {
		t.Errorf("late release = %v, want None", got)
	}
}

func TestPulse(t *testing.T) {
	c := NewPulse(1.0)
	halfSec := core.NewTime(500 * time.Millisecond)

	if got := c.Evaluate(nil, halfSec, pressed); got != action.StateFired {
		t.Errorf("start = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, halfSec, pressed); got != action.StateOngoing {
		t.Errorf("0.5s = %v, want Ongoing", got)
	}
	if got := c.Evaluate(nil, halfSec, pressed); got != action.StateFired {
		t.Errorf("1.0s = %v, want Fired", got)
	}

	// release and re-press restarts the cycle
	c.Evaluate(nil, halfSec, idle)
	if got := c.Evaluate(nil, halfSec, pressed); got != action.StateFired {
		t.Errorf("restart = %v, want Fired", got)
	}
}

func TestPulseInitialDelay(t *testing.T) {
	c := NewPulse(0.1)
	c.InitialDelay = 0.3
	c.TriggerOnStart = false
	tick := core.NewTime(100 * time.Millisecond)

	states := make([]action.State, 0, 6)
	for i := 0; i < 6; i++ {
		states = append(states, c.Evaluate(nil, tick, pressed))
	}
	want := []action.State{
		action.StateOngoing, // start, no trigger
		action.StateOngoing, // 0.1
		action.StateOngoing, // 0.2
		action.StateFired,   // 0.3 initial delay reached
		action.StateFired,   // 0.1 interval
		action.StateFired,
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("tick %d = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestPulseTriggerLimit(t *testing.T) {
	c := NewPulse(0.1)
	c.TriggerLimit = 2
	tick := core.NewTime(100 * time.Millisecond)

	if got := c.Evaluate(nil, tick, pressed); got != action.StateFired {
		t.Errorf("pulse 1 = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, tick, pressed); got != action.StateFired {
		t.Errorf("pulse 2 = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, tick, pressed); got != action.StateNone {
		t.Errorf("past limit = %v, want None", got)
	}
}

func TestCooldown(t *testing.T) {
	c := NewCooldown(0.3)

	// pre-elapsed, first press fires
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("first press = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, pressed); got != action.StateNone {
		t.Errorf("held = %v, want None", got)
	}

	// quick re-press inside the cooldown stays blocked
	c.Evaluate(nil, step100, idle)
	if got := c.Evaluate(nil, step100, pressed); got != action.StateNone {
		t.Errorf("inside cooldown = %v, want None", got)
	}

	// wait out the cooldown while released
	c.Evaluate(nil, step100, idle)
	c.Evaluate(nil, step100, idle)
	c.Evaluate(nil, step100, idle)
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("after cooldown = %v, want Fired", got)
	}
}

func TestToggle(t *testing.T) {
	c := NewToggle()
	if got := c.Evaluate(nil, step100, pressed); got != action.StateFired {
		t.Errorf("toggled on = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateFired {
		t.Errorf("released while on = %v, want Fired", got)
	}
	if got := c.Evaluate(nil, step100, pressed); got != action.StateNone {
		t.Errorf("toggled off = %v, want None", got)
	}
	if got := c.Evaluate(nil, step100, idle); got != action.StateNone {
		t.Errorf("released while off = %v, want None", got)
	}
}

func TestChord(t *testing.T) {
	a, b := core.Entity(1), core.Entity(2)
	c := NewChord(a, b)

	q := fakeQuery{
		a: {State: action.StateFired},
		b: {State: action.StateFired},
	}
	if got := c.Evaluate(q, step100, idle); got != action.StateFired {
		t.Errorf("both fired = %v, want Fired", got)
	}

	q[b] = action.Data{State: action.StateOngoing}
	if got := c.Evaluate(q, step100, idle); got != action.StateOngoing {
		t.Errorf("one ongoing = %v, want Ongoing", got)
	}

	q[a] = action.Data{State: action.StateNone}
	q[b] = action.Data{State: action.StateNone}
	if got := c.Evaluate(q, step100, idle); got != action.StateNone {
		t.Errorf("both none = %v, want None", got)
	}
}

func TestChordSkipsMissingActions(t *testing.T) {
	a := core.Entity(1)
	c := NewChord(a, core.Entity(99))
	q := fakeQuery{a: {State: action.StateFired}}
	if got := c.Evaluate(q, step100, idle); got != action.StateOngoing {
		t.Errorf("missing member = %v, want Ongoing", got)
	}
}

func TestBlockBy(t *testing.T) {
	blocker := core.Entity(7)
	c := NewBlockBy(blocker)

	q := fakeQuery{blocker: {State: action.StateOngoing}}
	if got := c.Evaluate(q, step100, pressed); got != action.StateNone {
		t.Errorf("blocked = %v, want None", got)
	}

	q[blocker] = action.Data{State: action.StateNone}
	if got := c.Evaluate(q, step100, pressed); got != action.StateFired {
		t.Errorf("unblocked = %v, want abstain (Fired)", got)
	}
}

func TestComboCompletesInOrder(t *testing.T) {
	a, b := core.Entity(1), core.Entity(2)
	c := NewCombo([]ComboStep{
		{Action: a},
		{Action: b, Timeout: 0.5},
	})

	q := fakeQuery{a: {}, b: {}}
	if got := c.Evaluate(q, step100, idle); got != action.StateNone {
		t.Errorf("idle = %v, want None", got)
	}

	q[a] = action.Data{State: action.StateFired, Events: action.EventFire}
	if got := c.Evaluate(q, step100, idle); got != action.StateOngoing {
		t.Errorf("step 1 = %v, want Ongoing", got)
	}

	q[a] = action.Data{}
	q[b] = action.Data{State: action.StateFired, Events: action.EventFire}
	if got := c.Evaluate(q, step100, idle); got != action.StateFired {
		t.Errorf("final step = %v, want Fired", got)
	}

	// one-tick fire, then back to idle
	q[b] = action.Data{}
	if got := c.Evaluate(q, step100, idle); got != action.StateNone {
		t.Errorf("after completion = %v, want None", got)
	}
}

func TestComboTimeout(t *testing.T) {
	a, b := core.Entity(1), core.Entity(2)
	c := NewCombo([]ComboStep{
		{Action: a},
		{Action: b, Timeout: 0.15},
	})

	q := fakeQuery{a: {State: action.StateFired, Events: action.EventFire}, b: {}}
	c.Evaluate(q, step100, idle)

	q[a] = action.Data{}
	c.Evaluate(q, step100, idle)
	if got := c.Evaluate(q, step100, idle); got != action.StateNone {
		t.Errorf("timed out = %v, want None", got)
	}
}

func TestComboOutOfOrderCancels(t *testing.T) {
	a, b, x := core.Entity(1), core.Entity(2), core.Entity(3)
	c := NewCombo([]ComboStep{
		{Action: a},
		{Action: x},
		{Action: b},
	})

	q := fakeQuery{a: {State: action.StateFired, Events: action.EventFire}, b: {}, x: {}}
	c.Evaluate(q, step100, idle)

	// final step fires while step 2 is expected
	q[a] = action.Data{}
	q[b] = action.Data{State: action.StateFired, Events: action.EventFire}
	if got := c.Evaluate(q, step100, idle); got != action.StateNone {
		t.Errorf("out of order = %v, want None", got)
	}
}

func TestComboCancelAction(t *testing.T) {
	a, b, cancel := core.Entity(1), core.Entity(2), core.Entity(3)
	c := NewCombo(
		[]ComboStep{{Action: a}, {Action: b}},
		ComboCancel{Action: cancel},
	)

	q := fakeQuery{a: {State: action.StateFired, Events: action.EventFire}, b: {}, cancel: {}}
	c.Evaluate(q, step100, idle)

	q[a] = action.Data{}
	q[cancel] = action.Data{State: action.StateOngoing, Events: action.EventOngoing}
	if got := c.Evaluate(q, step100, idle); got != action.StateNone {
		t.Errorf("canceled = %v, want None", got)
	}
}

func TestComboCancelIgnoredForCurrentStep(t *testing.T) {
	a, b := core.Entity(1), core.Entity(2)
	c := NewCombo(
		[]ComboStep{{Action: a}, {Action: b}},
		ComboCancel{Action: a},
	)

	q := fakeQuery{a: {State: action.StateFired, Events: action.EventFire}, b: {}}
	if got := c.Evaluate(q, step100, idle); got != action.StateOngoing {
		t.Errorf("self-cancel = %v, want Ongoing", got)
	}
}
