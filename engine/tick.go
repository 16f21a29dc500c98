package engine

import (
	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

// Tick runs one evaluation of every context instance on the schedule, in
// two phases. The update phase stages each action's next state and value
// in context-priority order; the apply phase commits the staged results
// and emits lifecycle events in the same order. Unknown schedules are a
// no-op tallied in diagnostics.
func (e *Engine) Tick(schedule string, t core.Time) {
	if !e.schedules[schedule] {
		e.diag.unknownSchedule(schedule)
		return
	}

	// consumed is scratch; it must start empty every tick
	clear(e.consumed)
	e.releasePending()

	q := e.Query()
	// handlers may despawn contexts and actions mid-dispatch, so both
	// phases walk reusable snapshots and tolerate records going missing
	instances := append(e.instanceBuf[:0], e.world.instances[schedule]...)
	e.instanceBuf = instances

	for _, ctxID := range instances {
		crec := e.world.contexts[ctxID]
		if crec == nil {
			continue
		}
		for _, actID := range crec.sortedActions(e.world) {
			arec := e.world.actions[actID]
			if arec == nil || arec.externallyMocked {
				continue
			}
			if !crec.active {
				arec.nextState = action.StateNone
				arec.nextValue = action.Zero(arec.dim)
				arec.advanceTiming(t.DeltaSecs(), action.StateNone)
				continue
			}
			e.updateAction(crec, arec, q, t)
		}
	}

	for _, ctxID := range instances {
		crec := e.world.contexts[ctxID]
		if crec == nil {
			continue
		}
		acts := append(e.actionBuf[:0], crec.sortedActions(e.world)...)
		e.actionBuf = acts
		for _, actID := range acts {
			arec := e.world.actions[actID]
			if arec == nil || arec.externallyMocked {
				continue
			}
			ev := action.NewEvents(arec.state, arec.nextState)
			arec.state = arec.nextState
			arec.value = arec.nextValue
			arec.events = ev
			e.observers.emit(ev, Event{
				Action:  arec.id,
				Context: arec.context,
				Value:   arec.value,
				State:   arec.state,
				Timing:  arec.reported,
			})
		}
	}

	e.emitRetired(schedule)
}

// updateAction stages one action's next state and value.
func (e *Engine) updateAction(crec *contextRecord, arec *actionRecord, q action.Query, t core.Time) {
	if arec.mock != nil && arec.mock.Enabled {
		st := arec.mock.State
		v := e.coerce(arec.mock.Value, arec.dim)
		if arec.mock.Advance(t.Delta) {
			arec.mock.Enabled = false
		}
		arec.nextState = st
		arec.nextValue = v
		arec.advanceTiming(t.DeltaSecs(), st)
		return
	}

	curState := action.StateNone
	curValue := action.Zero(arec.dim)
	arec.consumeBuf = arec.consumeBuf[:0]

	for _, br := range arec.bindings {
		raw := e.readBinding(br, crec, arec)
		v := raw
		for _, m := range br.modifiers {
			v = m.Transform(q, t, v)
		}
		btr := newTracker()
		for _, c := range br.conditions {
			btr.evaluate(c, q, t, v)
		}
		bst := btr.combined(v)
		// bindings resolving to None stay out of the combination so
		// action-level conditions can still fire the action
		if bst == action.StateNone {
			continue
		}
		bv := v.Convert(arec.dim)
		if bst > curState {
			curState = bst
			curValue = bv
			arec.consumeBuf = append(arec.consumeBuf[:0], br.source)
		} else if bst == curState {
			if arec.settings.Accumulation == action.MaxAbs {
				curValue = curValue.MaxAbs(bv)
			} else {
				curValue = curValue.Add(bv)
			}
			arec.consumeBuf = append(arec.consumeBuf, br.source)
		}
	}

	v := curValue
	for _, m := range arec.modifiers {
		v = m.Transform(q, t, v)
	}
	atr := newTracker()
	if curState != action.StateNone {
		atr.add(curState)
	}
	for _, c := range arec.conditions {
		atr.evaluate(c, q, t, v)
	}
	final := atr.combined(v)

	if arec.settings.ConsumeInput && final != action.StateNone {
		for _, b := range arec.consumeBuf {
			e.consumed[b] = struct{}{}
		}
	}

	arec.nextState = final
	arec.nextValue = e.coerce(v, arec.dim)
	arec.advanceTiming(t.DeltaSecs(), final)
}

// readBinding returns the raw value for one binding, honoring this tick's
// consumption set, the engine-wide pending set, and the require-reset
// latch.
func (e *Engine) readBinding(br *bindingRecord, crec *contextRecord, arec *actionRecord) action.Value {
	if _, held := e.pending[br.source]; held {
		return action.Zero(br.source.Dim())
	}
	if _, used := e.consumed[br.source]; used {
		return action.Zero(br.source.Dim())
	}
	raw := e.source.Read(br.source, crec.gamepad)
	if arec.settings.RequireReset && br.latched {
		if raw.IsActuated(0) {
			// consumed but ignored: lower-priority actions must not see
			// the held input either
			e.consumed[br.source] = struct{}{}
			return action.Zero(br.source.Dim())
		}
		br.latched = false
	}
	return raw
}

// releasePending drops pending bindings whose raw reading went inactive.
func (e *Engine) releasePending() {
	for b, pad := range e.pending {
		if !e.source.Read(b, pad).IsActuated(0) {
			delete(e.pending, b)
		}
	}
}

// emitRetired fires the terminal events of actions despawned since the
// previous tick of their schedule.
func (e *Engine) emitRetired(schedule string) {
	if len(e.retired) == 0 {
		return
	}
	// handlers may despawn more actions while we emit; detach the batch so
	// their records land on e.retired for the next tick instead of being
	// lost
	batch := e.retired
	e.retired = nil
	for _, r := range batch {
		if r.schedule != schedule && r.schedule != "" {
			e.retired = append(e.retired, r)
			continue
		}
		ev := action.NewEvents(r.state, action.StateNone)
		e.observers.emit(ev, Event{
			Action:  r.id,
			Context: r.context,
			Value:   r.value,
			State:   action.StateNone,
			Timing:  r.timing,
		})
	}
}

// coerce converts a delivered value to the action's declared dimension,
// tallying a diagnostic when they disagree.
func (e *Engine) coerce(v action.Value, dim action.Dim) action.Value {
	if v.Dim() == dim {
		return v
	}
	e.diag.dimMismatch(v.Dim(), dim)
	return v.Convert(dim)
}
