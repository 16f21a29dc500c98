package engine

import (
	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

// Event is one lifecycle notification delivered during the apply phase.
// Kind is always a single bit of the action's event set.
type Event struct {
	Kind    action.Events
	Action  core.Entity
	Context core.Entity
	Value   action.Value
	State   action.State
	Timing  action.Timing
}

// Handler receives routed lifecycle events. Observers implement this
// interface to be invoked synchronously during the apply phase.
type Handler interface {
	// HandleEvent processes a single event
	HandleEvent(e Event)

	// EventKinds returns the event kinds this handler processes
	EventKinds() []action.Events
}

// handlerFunc adapts a plain function to Handler for one set of kinds
type handlerFunc struct {
	kinds []action.Events
	fn    func(Event)
}

func (h *handlerFunc) HandleEvent(e Event)         { h.fn(e) }
func (h *handlerFunc) EventKinds() []action.Events { return h.kinds }

// dispatcher routes lifecycle events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch during the apply phase
//   - Multiple handlers can register for the same event kind
//   - Handlers are invoked in registration order
//   - At most one event per kind per action per tick
type dispatcher struct {
	handlers map[action.Events][]Handler
}

func newDispatcher() *dispatcher {
	return &dispatcher{handlers: make(map[action.Events][]Handler)}
}

func (d *dispatcher) register(h Handler) {
	for _, k := range h.EventKinds() {
		d.handlers[k] = append(d.handlers[k], h)
	}
}

// emit routes every kind present in the event set, in emission order
func (d *dispatcher) emit(set action.Events, e Event) {
	for _, kind := range set.Kinds() {
		e.Kind = kind
		for _, h := range d.handlers[kind] {
			h.HandleEvent(e)
		}
	}
}
