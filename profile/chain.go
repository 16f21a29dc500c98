package profile

import (
	"fmt"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/condition"
	"github.com/lixenwraith/inputflow/core"
	"github.com/lixenwraith/inputflow/engine"
	"github.com/lixenwraith/inputflow/modifier"
)

// buildConditions turns declared condition tables into instances. The
// sibling-referencing kinds resolve action names against the document's
// spawned actions; everything else goes through the engine's factory
// registry.
func buildConditions(eng *engine.Engine, res *Result, decls []map[string]any) ([]condition.Condition, error) {
	if len(decls) == 0 {
		return nil, nil
	}
	out := make([]condition.Condition, 0, len(decls))
	for _, decl := range decls {
		p := engine.Params(decl)
		kind := p.String("type", "")
		if kind == "" {
			return nil, fmt.Errorf("condition without a type")
		}
		var (
			c   condition.Condition
			err error
		)
		switch kind {
		case "chord":
			c, err = buildChord(res, p)
		case "block_by":
			c, err = buildBlockBy(res, p)
		case "combo":
			c, err = buildCombo(res, p)
		default:
			c, err = eng.NewCondition(kind, p)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// buildModifiers mirrors buildConditions: accumulate_by references another
// action by name and resolves against the document, the rest go through
// the factory registry.
func buildModifiers(eng *engine.Engine, res *Result, decls []map[string]any) ([]modifier.Modifier, error) {
	if len(decls) == 0 {
		return nil, nil
	}
	out := make([]modifier.Modifier, 0, len(decls))
	for _, decl := range decls {
		p := engine.Params(decl)
		kind := p.String("type", "")
		if kind == "" {
			return nil, fmt.Errorf("modifier without a type")
		}
		var (
			m   modifier.Modifier
			err error
		)
		switch kind {
		case "accumulate_by":
			m, err = buildAccumulateBy(res, p)
		default:
			m, err = eng.NewModifier(kind, p)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func buildAccumulateBy(res *Result, p engine.Params) (modifier.Modifier, error) {
	act, err := resolveAction(res, p.String("action", ""))
	if err != nil {
		return nil, fmt.Errorf("accumulate_by: %w", err)
	}
	return modifier.NewAccumulateBy(act), nil
}

func buildChord(res *Result, p engine.Params) (condition.Condition, error) {
	members, err := resolveActionList(res, p["actions"])
	if err != nil {
		return nil, fmt.Errorf("chord: %w", err)
	}
	return condition.NewChord(members...), nil
}

func buildBlockBy(res *Result, p engine.Params) (condition.Condition, error) {
	members, err := resolveActionList(res, p["actions"])
	if err != nil {
		return nil, fmt.Errorf("block_by: %w", err)
	}
	return condition.NewBlockBy(members...), nil
}

func buildCombo(res *Result, p engine.Params) (condition.Condition, error) {
	rawSteps, ok := p["step"].([]any)
	if !ok || len(rawSteps) == 0 {
		return nil, fmt.Errorf("combo: needs at least one [[step]]")
	}
	steps := make([]condition.ComboStep, 0, len(rawSteps))
	for i, raw := range rawSteps {
		tbl, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("combo: step %d is not a table", i)
		}
		sp := engine.Params(tbl)
		act, err := resolveAction(res, sp.String("action", ""))
		if err != nil {
			return nil, fmt.Errorf("combo step %d: %w", i, err)
		}
		ev, err := parseEvents(sp["events"])
		if err != nil {
			return nil, fmt.Errorf("combo step %d: %w", i, err)
		}
		steps = append(steps, condition.ComboStep{
			Action:  act,
			Events:  ev,
			Timeout: sp.Float("timeout", 0),
		})
	}

	var cancels []condition.ComboCancel
	if rawCancels, ok := p["cancel"].([]any); ok {
		for i, raw := range rawCancels {
			tbl, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("combo: cancel %d is not a table", i)
			}
			cp := engine.Params(tbl)
			act, err := resolveAction(res, cp.String("action", ""))
			if err != nil {
				return nil, fmt.Errorf("combo cancel %d: %w", i, err)
			}
			ev, err := parseEvents(cp["events"])
			if err != nil {
				return nil, fmt.Errorf("combo cancel %d: %w", i, err)
			}
			cancels = append(cancels, condition.ComboCancel{Action: act, Events: ev})
		}
	}
	return condition.NewCombo(steps, cancels...), nil
}

func resolveAction(res *Result, name string) (core.Entity, error) {
	if name == "" {
		return core.Invalid, fmt.Errorf("missing action name")
	}
	id, ok := res.Actions[name]
	if !ok {
		return core.Invalid, fmt.Errorf("unknown action %q", name)
	}
	return id, nil
}

func resolveActionList(res *Result, raw any) ([]core.Entity, error) {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf(`needs actions = ["name", ...]`)
	}
	out := make([]core.Entity, 0, len(list))
	for _, item := range list {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("action names must be strings, got %T", item)
		}
		id, err := resolveAction(res, name)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

var eventNames = map[string]action.Events{
	"start":    action.EventStart,
	"ongoing":  action.EventOngoing,
	"fire":     action.EventFire,
	"cancel":   action.EventCancel,
	"complete": action.EventComplete,
}

// parseEvents reads an event-name list into a bitset; nil means "use the
// condition's default".
func parseEvents(raw any) (action.Events, error) {
	if raw == nil {
		return 0, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return 0, fmt.Errorf("events must be a list of names")
	}
	var ev action.Events
	for _, item := range list {
		name, ok := item.(string)
		if !ok {
			return 0, fmt.Errorf("event names must be strings, got %T", item)
		}
		bit, ok := eventNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown event %q", name)
		}
		ev |= bit
	}
	return ev, nil
}
