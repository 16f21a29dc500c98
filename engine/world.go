package engine

import (
	"sort"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/binding"
	"github.com/lixenwraith/inputflow/condition"
	"github.com/lixenwraith/inputflow/core"
	"github.com/lixenwraith/inputflow/modifier"
)

// bindingRecord is one physical input attached to an action, with its own
// modifier and condition chains.
type bindingRecord struct {
	source     binding.Binding
	modifiers  []modifier.Modifier
	conditions []condition.Condition

	// latched holds RequireReset actions back until the input reads
	// inactive once after (re)activation
	latched bool
}

// actionRecord is the full mutable state of one spawned action.
type actionRecord struct {
	id      core.Entity
	context core.Entity
	name    string
	dim     action.Dim

	settings   action.Settings
	bindings   []*bindingRecord
	modifiers  []modifier.Modifier
	conditions []condition.Condition

	mock             *action.Mock
	externallyMocked bool

	// committed slots, visible through Query
	state  action.State
	value  action.Value
	events action.Events
	timing action.Timing

	// staged by the update phase, committed by the apply phase
	nextState action.State
	nextValue action.Value

	// reported is the timing snapshot events carry; on a transition to
	// None it keeps the accumulators from before the reset so Cancel and
	// Complete can report how long the action ran
	reported action.Timing

	// consumeBuf collects the bindings sharing the winning state, reused
	// across ticks to avoid per-tick allocation
	consumeBuf []binding.Binding
}

// advanceTiming updates the accumulators and snapshots what events report.
func (r *actionRecord) advanceTiming(deltaSecs float64, st action.State) {
	prev := r.timing
	r.timing.Update(deltaSecs, st)
	if st == action.StateNone {
		r.reported = prev
	} else {
		r.reported = r.timing
	}
}

// contextRecord is one spawned context instance.
type contextRecord struct {
	id       core.Entity
	typeName string
	schedule string
	priority int
	seq      uint64
	active   bool
	gamepad  binding.GamepadDevice

	actions []core.Entity

	// sorted caches the evaluation order (descending max modifier-key
	// count, insertion order on ties); stale marks it for rebuild after
	// any binding or action change
	sorted []core.Entity
	stale  bool
}

// world is the arena of all spawned records, keyed by integer handles.
type world struct {
	next     core.Entity
	contexts map[core.Entity]*contextRecord
	actions  map[core.Entity]*actionRecord

	// instances holds context entities per schedule, kept sorted by
	// descending priority with spawn order breaking ties
	instances map[string][]core.Entity
}

func newWorld() *world {
	return &world{
		contexts:  make(map[core.Entity]*contextRecord),
		actions:   make(map[core.Entity]*actionRecord),
		instances: make(map[string][]core.Entity),
	}
}

func (w *world) newEntity() core.Entity {
	w.next++
	return w.next
}

func (w *world) sortInstances(schedule string) {
	list := w.instances[schedule]
	sort.SliceStable(list, func(i, j int) bool {
		a, b := w.contexts[list[i]], w.contexts[list[j]]
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		return a.seq < b.seq
	})
}

func (w *world) removeInstance(schedule string, e core.Entity) {
	list := w.instances[schedule]
	for i, id := range list {
		if id == e {
			w.instances[schedule] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// maxModKeys returns the largest modifier-key count among an action's
// bindings. Actions with more specific key combinations evaluate first so
// Ctrl+C can consume the key before a bare C binding sees it.
func (r *actionRecord) maxModKeys() int {
	max := 0
	for _, br := range r.bindings {
		if n := br.source.ModKeyCount(); n > max {
			max = n
		}
	}
	return max
}

// sortedActions returns the context's actions in evaluation order,
// rebuilding the cached order if it went stale.
func (c *contextRecord) sortedActions(w *world) []core.Entity {
	if !c.stale && c.sorted != nil {
		return c.sorted
	}
	c.sorted = append(c.sorted[:0], c.actions...)
	sort.SliceStable(c.sorted, func(i, j int) bool {
		a, b := w.actions[c.sorted[i]], w.actions[c.sorted[j]]
		return a.maxModKeys() > b.maxModKeys()
	})
	c.stale = false
	return c.sorted
}

func (c *contextRecord) removeAction(e core.Entity) {
	for i, id := range c.actions {
		if id == e {
			c.actions = append(c.actions[:i], c.actions[i+1:]...)
			c.stale = true
			return
		}
	}
}
