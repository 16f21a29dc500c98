package profile

import (
	"testing"
	"time"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
	"github.com/lixenwraith/inputflow/device"
	"github.com/lixenwraith/inputflow/engine"
)

const doc = `
[[context]]
type = "gameplay"
priority = 5

  [[context.action]]
  name = "move"
  dim = "axis1d"
  accumulation = "cumulative"

    [[context.action.binding]]
    key = "d"

    [[context.action.binding]]
    key = "a"
      [[context.action.binding.modifier]]
      type = "negate"

  [[context.action]]
  name = "jump"
  consume_input = true

    [[context.action.condition]]
    type = "hold"
    hold_time = 0.2

    [[context.action.binding]]
    key = "space"

  [[context.action]]
  name = "both"

    [[context.action.condition]]
    type = "chord"
    actions = ["move", "jump"]
`

func newTestEngine(t *testing.T) (*engine.Engine, *device.State) {
	t.Helper()
	b := engine.NewBuilder()
	engine.MustRegister(b.RegisterSchedule("main"))
	engine.MustRegister(b.RegisterContextType(engine.ContextType{Name: "gameplay", Schedule: "main"}))
	input := device.NewState()
	eng, err := b.Build(input)
	if err != nil {
		t.Fatal(err)
	}
	return eng, input
}

func TestLoadProfile(t *testing.T) {
	eng, input := newTestEngine(t)
	res, err := Load([]byte(doc), eng)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Contexts) != 1 {
		t.Fatalf("contexts = %d, want 1", len(res.Contexts))
	}
	if len(res.Actions) != 3 {
		t.Fatalf("actions = %d, want 3", len(res.Actions))
	}

	move := res.Actions["move"]
	input.PressKey('a')
	eng.Tick("main", core.NewTime(50*time.Millisecond))
	if got := eng.Value(move).AsAxis1D(); got != -1 {
		t.Errorf("negated binding value = %v, want -1", got)
	}
	if got := eng.State(move); got != action.StateFired {
		t.Errorf("move state = %v, want Fired", got)
	}

	// hold condition from the profile shapes jump's lifecycle
	jump := res.Actions["jump"]
	input.PressKey(' ')
	eng.Tick("main", core.NewTime(50*time.Millisecond))
	if got := eng.State(jump); got != action.StateOngoing {
		t.Errorf("jump before hold time = %v, want Ongoing", got)
	}
	eng.Tick("main", core.NewTime(200*time.Millisecond))
	if got := eng.State(jump); got != action.StateFired {
		t.Errorf("jump past hold time = %v, want Fired", got)
	}
}

func TestChordResolvesNames(t *testing.T) {
	eng, input := newTestEngine(t)
	res, err := Load([]byte(doc), eng)
	if err != nil {
		t.Fatal(err)
	}

	input.PressKey('a')
	input.PressKey(' ')
	// move fires immediately; jump needs its hold time first
	eng.Tick("main", core.NewTime(200*time.Millisecond))
	eng.Tick("main", core.NewTime(200*time.Millisecond))
	eng.Tick("main", core.NewTime(200*time.Millisecond))

	both := res.Actions["both"]
	if got := eng.State(both); got != action.StateFired {
		t.Errorf("chord = %v, want Fired once both members fired", got)
	}
}

func TestAccumulateByResolvesName(t *testing.T) {
	eng, input := newTestEngine(t)
	res, err := Load([]byte(`
[[context]]
type = "gameplay"

  [[context.action]]
  name = "speed"
  dim = "axis1d"

    [[context.action.binding]]
    key = "w"

  [[context.action]]
  name = "boosted"
  dim = "axis1d"

    [[context.action.modifier]]
    type = "accumulate_by"
    action = "speed"

    [[context.action.binding]]
    key = "s"
`), eng)
	if err != nil {
		t.Fatal(err)
	}

	input.PressKey('w')
	input.PressKey('s')
	// the modifier reads speed's committed value, one tick behind
	eng.Tick("main", core.NewTime(50*time.Millisecond))
	eng.Tick("main", core.NewTime(50*time.Millisecond))

	boosted := res.Actions["boosted"]
	if got := eng.Value(boosted).AsAxis1D(); got != 2 {
		t.Errorf("boosted value = %v, want own 1 plus speed's 1", got)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown context type", `
[[context]]
type = "nope"
`},
		{"unknown condition", `
[[context]]
type = "gameplay"
  [[context.action]]
  name = "a"
    [[context.action.condition]]
    type = "nonsense"
`},
		{"chord with unknown action", `
[[context]]
type = "gameplay"
  [[context.action]]
  name = "a"
    [[context.action.condition]]
    type = "chord"
    actions = ["ghost"]
`},
		{"binding without source", `
[[context]]
type = "gameplay"
  [[context.action]]
  name = "a"
    [[context.action.binding]]
`},
		{"duplicate action name", `
[[context]]
type = "gameplay"
  [[context.action]]
  name = "a"
  [[context.action]]
  name = "a"
`},
		{"accumulate_by with unknown action", `
[[context]]
type = "gameplay"
  [[context.action]]
  name = "a"
    [[context.action.modifier]]
    type = "accumulate_by"
    action = "ghost"
`},
		{"hold without duration", `
[[context]]
type = "gameplay"
  [[context.action]]
  name = "a"
    [[context.action.condition]]
    type = "hold"
`},
	}
	for _, c := range cases {
		eng, _ := newTestEngine(t)
		if _, err := Load([]byte(c.doc), eng); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}
