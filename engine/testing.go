package engine

import (
	"time"

	"github.com/lixenwraith/inputflow/core"
	"github.com/lixenwraith/inputflow/device"
)

// TestSchedule is the schedule name NewTestRig registers.
const TestSchedule = "test"

// TestRig bundles an engine, a device state and one spawned context for
// deterministic pipeline tests. This is a test helper that performs the
// full builder dance so tests can go straight to spawning actions.
type TestRig struct {
	Engine  *Engine
	Input   *device.State
	Context core.Entity
}

// NewTestRig builds an engine with a single schedule and context type and
// spawns one active context instance.
func NewTestRig() *TestRig {
	b := NewBuilder()
	MustRegister(b.RegisterSchedule(TestSchedule))
	MustRegister(b.RegisterContextType(ContextType{Name: "test", Schedule: TestSchedule}))

	input := device.NewState()
	eng, err := b.Build(input)
	if err != nil {
		panic(err)
	}
	ctx, err := eng.SpawnContext("test")
	if err != nil {
		panic(err)
	}
	return &TestRig{Engine: eng, Input: input, Context: ctx}
}

// Step runs one tick with the given delta and clears per-tick device
// accumulators, mirroring a host loop.
func (r *TestRig) Step(d time.Duration) {
	r.Engine.Tick(TestSchedule, core.NewTime(d))
	r.Input.ClearDeltas()
}

// StepN runs n ticks with the same delta.
func (r *TestRig) StepN(n int, d time.Duration) {
	for i := 0; i < n; i++ {
		r.Step(d)
	}
}
