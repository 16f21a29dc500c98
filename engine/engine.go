// Package engine evaluates contexts, actions and bindings once per tick.
// The whole pipeline is single-threaded and driven by an injected delta;
// nothing in the hot path blocks, allocates per-binding, or reads a real
// clock, which keeps evaluation deterministic and replayable.
package engine

import (
	"fmt"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/binding"
	"github.com/lixenwraith/inputflow/condition"
	"github.com/lixenwraith/inputflow/core"
	"github.com/lixenwraith/inputflow/modifier"
)

// retiredRecord keeps just enough of a despawned action to emit its
// terminal event on the next apply phase.
type retiredRecord struct {
	id       core.Entity
	context  core.Entity
	schedule string
	state    action.State
	value    action.Value
	timing   action.Timing
}

// Engine owns the world of context and action records and runs the
// per-schedule evaluation pipeline. Construct one through Builder.Build.
type Engine struct {
	source     InputSource
	world      *world
	types      map[string]ContextType
	schedules  map[string]bool
	conditions map[string]ConditionFactory
	modifiers  map[string]ModifierFactory

	observers *dispatcher
	diag      Diagnostics

	// consumed is per-tick scratch keyed by binding descriptor; cleared
	// before every update phase
	consumed map[binding.Binding]struct{}
	// pending holds bindings of removed or deactivated require-reset
	// actions; they read as zero for everyone until the device reports
	// them inactive
	pending map[binding.Binding]binding.GamepadDevice

	retired []retiredRecord
	seq     uint64

	// per-tick snapshots of the schedule's instances and a context's
	// actions; handlers may mutate the world mid-dispatch, so the tick
	// never iterates live arena slices
	instanceBuf []core.Entity
	actionBuf   []core.Entity
}

func newEngine(b *Builder, source InputSource) *Engine {
	return &Engine{
		source:     source,
		world:      newWorld(),
		types:      b.types,
		schedules:  b.schedules,
		conditions: b.conditions,
		modifiers:  b.modifiers,
		observers:  newDispatcher(),
		consumed:   make(map[binding.Binding]struct{}),
		pending:    make(map[binding.Binding]binding.GamepadDevice),
	}
}

// Diagnostics returns the non-fatal anomaly counters.
func (e *Engine) Diagnostics() Diagnostics { return e.diag }

// Observe registers a lifecycle event handler for its declared kinds.
// Handlers run synchronously during the apply phase in registration order.
func (e *Engine) Observe(h Handler) { e.observers.register(h) }

// ObserveFunc registers a plain function for the given event kinds.
func (e *Engine) ObserveFunc(kinds []action.Events, fn func(Event)) {
	e.observers.register(&handlerFunc{kinds: kinds, fn: fn})
}

// NewCondition instantiates a registered condition by name.
func (e *Engine) NewCondition(name string, p Params) (condition.Condition, error) {
	f, ok := e.conditions[name]
	if !ok {
		return nil, fmt.Errorf("engine: unknown condition %q", name)
	}
	return f(p)
}

// NewModifier instantiates a registered modifier by name.
func (e *Engine) NewModifier(name string, p Params) (modifier.Modifier, error) {
	f, ok := e.modifiers[name]
	if !ok {
		return nil, fmt.Errorf("engine: unknown modifier %q", name)
	}
	return f(p)
}

// SpawnContext creates an active instance of a registered context type.
func (e *Engine) SpawnContext(typeName string) (core.Entity, error) {
	ct, ok := e.types[typeName]
	if !ok {
		return core.Invalid, fmt.Errorf("engine: unknown context type %q", typeName)
	}
	id := e.world.newEntity()
	e.seq++
	rec := &contextRecord{
		id:       id,
		typeName: typeName,
		schedule: ct.Schedule,
		priority: ct.Priority,
		seq:      e.seq,
		active:   true,
		gamepad:  binding.AnyGamepad(),
	}
	e.world.contexts[id] = rec
	e.world.instances[ct.Schedule] = append(e.world.instances[ct.Schedule], id)
	e.world.sortInstances(ct.Schedule)
	return id, nil
}

// DespawnContext removes a context instance and all its actions. Each
// action's terminal event fires on the next apply phase of its schedule.
func (e *Engine) DespawnContext(ctx core.Entity) error {
	rec, ok := e.world.contexts[ctx]
	if !ok {
		return fmt.Errorf("engine: unknown context %d", ctx)
	}
	for _, act := range append([]core.Entity(nil), rec.actions...) {
		e.despawnAction(act)
	}
	delete(e.world.contexts, ctx)
	e.world.removeInstance(rec.schedule, ctx)
	return nil
}

// SetActive toggles a context instance's activity flag. Deactivation lets
// the next tick drive every action to None through the normal pipeline,
// emitting Cancel or Complete; require-reset actions get their bindings
// latched until the inputs release.
func (e *Engine) SetActive(ctx core.Entity, active bool) error {
	rec, ok := e.world.contexts[ctx]
	if !ok {
		return fmt.Errorf("engine: unknown context %d", ctx)
	}
	if rec.active == active {
		return nil
	}
	rec.active = active
	for _, act := range rec.actions {
		ar := e.world.actions[act]
		if ar == nil || !ar.settings.RequireReset {
			continue
		}
		for _, br := range ar.bindings {
			if active {
				br.latched = true
			} else {
				e.pending[br.source] = rec.gamepad
			}
		}
	}
	return nil
}

// SetPriority changes a context instance's priority and re-sorts its
// schedule's evaluation order.
func (e *Engine) SetPriority(ctx core.Entity, priority int) error {
	rec, ok := e.world.contexts[ctx]
	if !ok {
		return fmt.Errorf("engine: unknown context %d", ctx)
	}
	rec.priority = priority
	e.world.sortInstances(rec.schedule)
	return nil
}

// SetGamepad scopes a context instance's gamepad bindings to a device.
func (e *Engine) SetGamepad(ctx core.Entity, pad binding.GamepadDevice) error {
	rec, ok := e.world.contexts[ctx]
	if !ok {
		return fmt.Errorf("engine: unknown context %d", ctx)
	}
	rec.gamepad = pad
	return nil
}

// SpawnAction creates an action owned by a context. Bindings and chains
// attach afterwards; an action with no bindings never fires.
func (e *Engine) SpawnAction(ctx core.Entity, name string, dim action.Dim, settings action.Settings) (core.Entity, error) {
	crec, ok := e.world.contexts[ctx]
	if !ok {
		return core.Invalid, fmt.Errorf("engine: unknown context %d", ctx)
	}
	id := e.world.newEntity()
	arec := &actionRecord{
		id:       id,
		context:  ctx,
		name:     name,
		dim:      dim,
		settings: settings,
		value:    action.Zero(dim),
	}
	arec.nextValue = arec.value
	e.world.actions[id] = arec
	crec.actions = append(crec.actions, id)
	crec.stale = true
	return id, nil
}

// DespawnAction removes an action. Its terminal event fires on the next
// apply phase; require-reset bindings go pending until released.
func (e *Engine) DespawnAction(act core.Entity) error {
	if _, ok := e.world.actions[act]; !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	e.despawnAction(act)
	return nil
}

func (e *Engine) despawnAction(act core.Entity) {
	rec := e.world.actions[act]
	if rec == nil {
		return
	}
	schedule := ""
	if crec := e.world.contexts[rec.context]; crec != nil {
		schedule = crec.schedule
		crec.removeAction(act)
		if rec.settings.RequireReset {
			for _, br := range rec.bindings {
				e.pending[br.source] = crec.gamepad
			}
		}
	}
	// externally mocked actions are owned by outside logic, including
	// their teardown
	if !rec.externallyMocked && rec.state != action.StateNone {
		e.retired = append(e.retired, retiredRecord{
			id:       rec.id,
			context:  rec.context,
			schedule: schedule,
			state:    rec.state,
			value:    action.Zero(rec.dim),
			timing:   rec.timing,
		})
	}
	delete(e.world.actions, act)
}

// AddBinding attaches an input source to an action, with optional
// binding-level modifier and condition chains.
func (e *Engine) AddBinding(act core.Entity, b binding.Binding, mods []modifier.Modifier, conds []condition.Condition) error {
	rec, ok := e.world.actions[act]
	if !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	br := &bindingRecord{
		source:     b,
		modifiers:  mods,
		conditions: conds,
		latched:    rec.settings.RequireReset,
	}
	rec.bindings = append(rec.bindings, br)
	if crec := e.world.contexts[rec.context]; crec != nil {
		crec.stale = true
	}
	return nil
}

// RemoveBinding detaches every binding on the action matching the given
// descriptor. If the action requires reset, the binding goes pending
// until the device reports it inactive.
func (e *Engine) RemoveBinding(act core.Entity, b binding.Binding) error {
	rec, ok := e.world.actions[act]
	if !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	kept := rec.bindings[:0]
	removed := false
	for _, br := range rec.bindings {
		if br.source == b {
			removed = true
			continue
		}
		kept = append(kept, br)
	}
	rec.bindings = kept
	if removed {
		if crec := e.world.contexts[rec.context]; crec != nil {
			crec.stale = true
			if rec.settings.RequireReset {
				e.pending[b] = crec.gamepad
			}
		}
	}
	return nil
}

// SetModifiers replaces an action's action-level modifier chain.
func (e *Engine) SetModifiers(act core.Entity, mods ...modifier.Modifier) error {
	rec, ok := e.world.actions[act]
	if !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	rec.modifiers = mods
	return nil
}

// SetConditions replaces an action's action-level condition chain.
func (e *Engine) SetConditions(act core.Entity, conds ...condition.Condition) error {
	rec, ok := e.world.actions[act]
	if !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	rec.conditions = conds
	return nil
}

// SetMock installs a mock override. While enabled it replaces binding
// evaluation entirely; lifecycle events still fire through the apply
// phase.
func (e *Engine) SetMock(act core.Entity, m *action.Mock) error {
	rec, ok := e.world.actions[act]
	if !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	rec.mock = m
	return nil
}

// ClearMock removes an action's mock override so binding evaluation
// resumes on the next tick.
func (e *Engine) ClearMock(act core.Entity) error {
	rec, ok := e.world.actions[act]
	if !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	rec.mock = nil
	return nil
}

// SetExternallyMocked hands full ownership of an action's state to
// outside logic; the engine stops updating it entirely.
func (e *Engine) SetExternallyMocked(act core.Entity, mocked bool) error {
	rec, ok := e.world.actions[act]
	if !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	rec.externallyMocked = mocked
	return nil
}

// InjectState writes an action's committed state and value directly.
// Intended for externally mocked actions.
func (e *Engine) InjectState(act core.Entity, st action.State, v action.Value) error {
	rec, ok := e.world.actions[act]
	if !ok {
		return fmt.Errorf("engine: unknown action %d", act)
	}
	rec.state = st
	rec.nextState = st
	rec.value = v.Convert(rec.dim)
	rec.nextValue = rec.value
	return nil
}

// Query returns a read view of committed action state for conditions,
// modifiers and host code.
func (e *Engine) Query() action.Query { return worldQuery{e} }

// State returns an action's committed trigger state.
func (e *Engine) State(act core.Entity) action.State {
	if rec, ok := e.world.actions[act]; ok {
		return rec.state
	}
	return action.StateNone
}

// Value returns an action's committed value.
func (e *Engine) Value(act core.Entity) action.Value {
	if rec, ok := e.world.actions[act]; ok {
		return rec.value
	}
	return action.Value{}
}

// worldQuery adapts the arena to the read-only Query interface.
// Missing handles fail softly and are tallied as diagnostics.
type worldQuery struct {
	e *Engine
}

func (q worldQuery) Get(ent core.Entity) (action.Data, bool) {
	rec, ok := q.e.world.actions[ent]
	if !ok {
		q.e.diag.missingAction(ent)
		return action.Data{}, false
	}
	return action.Data{
		Value:  rec.value,
		State:  rec.state,
		Events: rec.events,
		Timing: rec.timing,
	}, true
}
