// Package profile loads context, action and binding declarations from
// TOML documents and applies them to an engine. Profiles are a setup-time
// convenience; everything they declare can also be built through the
// engine API directly.
package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/binding"
	"github.com/lixenwraith/inputflow/core"
	"github.com/lixenwraith/inputflow/engine"
)

// Document is the decoded shape of a profile file.
type Document struct {
	Contexts []Context `toml:"context"`
}

// Context declares one instance of a registered context type.
type Context struct {
	Type      string   `toml:"type"`
	Priority  *int     `toml:"priority"`
	Active    *bool    `toml:"active"`
	Gamepad   string   `toml:"gamepad"`
	GamepadID *int     `toml:"gamepad_id"`
	Actions   []Action `toml:"action"`
}

// Action declares one action with its chains and bindings. Condition and
// modifier tables carry a "type" key naming a registered factory; every
// other key is passed through as a parameter.
type Action struct {
	Name         string           `toml:"name"`
	Dim          string           `toml:"dim"`
	Accumulation string           `toml:"accumulation"`
	RequireReset bool             `toml:"require_reset"`
	ConsumeInput bool             `toml:"consume_input"`
	Bindings     []Binding        `toml:"binding"`
	Conditions   []map[string]any `toml:"condition"`
	Modifiers    []map[string]any `toml:"modifier"`
}

// Binding declares one input source. Exactly one of the source fields
// should be set.
type Binding struct {
	Key         string           `toml:"key"`
	Mods        []string         `toml:"mods"`
	Mouse       string           `toml:"mouse"`
	MouseButton string           `toml:"mouse_button"`
	PadButton   *int             `toml:"pad_button"`
	PadAxis     *int             `toml:"pad_axis"`
	Conditions  []map[string]any `toml:"condition"`
	Modifiers   []map[string]any `toml:"modifier"`
}

// Result maps declared names back to spawned entities.
type Result struct {
	Contexts []core.Entity
	Actions  map[string]core.Entity
}

// LoadFile reads and applies a profile from disk.
func LoadFile(path string, eng *engine.Engine) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	res, err := Load(data, eng)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return res, nil
}

// LoadReader reads and applies a profile from a reader.
func LoadReader(r io.Reader, eng *engine.Engine) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return Load(data, eng)
}

// Load decodes a TOML document and applies it. Contexts and actions spawn
// first so sibling-referencing conditions (chord, block_by, combo) can
// resolve action names anywhere in the document; chains and bindings
// attach in a second pass.
func Load(data []byte, eng *engine.Engine) (*Result, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return Apply(&doc, eng)
}

// Apply spawns everything a decoded document declares.
func Apply(doc *Document, eng *engine.Engine) (*Result, error) {
	res := &Result{Actions: make(map[string]core.Entity)}

	type spawned struct {
		ctx  core.Entity
		decl *Action
		id   core.Entity
	}
	var all []spawned

	for i := range doc.Contexts {
		c := &doc.Contexts[i]
		ctx, err := eng.SpawnContext(c.Type)
		if err != nil {
			return nil, err
		}
		res.Contexts = append(res.Contexts, ctx)

		if c.Priority != nil {
			if err := eng.SetPriority(ctx, *c.Priority); err != nil {
				return nil, err
			}
		}
		pad, err := parseGamepad(c.Gamepad, c.GamepadID)
		if err != nil {
			return nil, fmt.Errorf("context %q: %w", c.Type, err)
		}
		if err := eng.SetGamepad(ctx, pad); err != nil {
			return nil, err
		}

		for j := range c.Actions {
			a := &c.Actions[j]
			if a.Name == "" {
				return nil, fmt.Errorf("context %q: action without a name", c.Type)
			}
			if _, dup := res.Actions[a.Name]; dup {
				return nil, fmt.Errorf("duplicate action name %q", a.Name)
			}
			dim, err := parseDim(a.Dim)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", a.Name, err)
			}
			settings, err := parseSettings(a)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", a.Name, err)
			}
			id, err := eng.SpawnAction(ctx, a.Name, dim, settings)
			if err != nil {
				return nil, err
			}
			res.Actions[a.Name] = id
			all = append(all, spawned{ctx: ctx, decl: a, id: id})
		}

		// deactivate last so actions spawn under a live context
		if c.Active != nil && !*c.Active {
			if err := eng.SetActive(ctx, false); err != nil {
				return nil, err
			}
		}
	}

	for _, s := range all {
		if err := attach(eng, res, s.id, s.decl); err != nil {
			return nil, fmt.Errorf("action %q: %w", s.decl.Name, err)
		}
	}
	return res, nil
}

func attach(eng *engine.Engine, res *Result, id core.Entity, decl *Action) error {
	conds, err := buildConditions(eng, res, decl.Conditions)
	if err != nil {
		return err
	}
	if len(conds) > 0 {
		if err := eng.SetConditions(id, conds...); err != nil {
			return err
		}
	}
	mods, err := buildModifiers(eng, res, decl.Modifiers)
	if err != nil {
		return err
	}
	if len(mods) > 0 {
		if err := eng.SetModifiers(id, mods...); err != nil {
			return err
		}
	}

	for i := range decl.Bindings {
		bd := &decl.Bindings[i]
		src, err := parseBinding(bd)
		if err != nil {
			return err
		}
		bconds, err := buildConditions(eng, res, bd.Conditions)
		if err != nil {
			return err
		}
		bmods, err := buildModifiers(eng, res, bd.Modifiers)
		if err != nil {
			return err
		}
		if err := eng.AddBinding(id, src, bmods, bconds); err != nil {
			return err
		}
	}
	return nil
}

func parseDim(s string) (action.Dim, error) {
	switch s {
	case "", "bool":
		return action.DimBool, nil
	case "axis1d":
		return action.DimAxis1D, nil
	case "axis2d":
		return action.DimAxis2D, nil
	case "axis3d":
		return action.DimAxis3D, nil
	}
	return action.DimBool, fmt.Errorf("unknown dim %q", s)
}

func parseSettings(a *Action) (action.Settings, error) {
	s := action.Settings{
		RequireReset: a.RequireReset,
		ConsumeInput: a.ConsumeInput,
	}
	switch a.Accumulation {
	case "", "cumulative":
	case "max_abs":
		s.Accumulation = action.MaxAbs
	default:
		return s, fmt.Errorf("unknown accumulation %q", a.Accumulation)
	}
	return s, nil
}

func parseGamepad(scope string, id *int) (binding.GamepadDevice, error) {
	switch scope {
	case "", "any":
		return binding.AnyGamepad(), nil
	case "none":
		return binding.NoGamepad(), nil
	case "single":
		if id == nil {
			return binding.GamepadDevice{}, fmt.Errorf("gamepad %q needs gamepad_id", scope)
		}
		return binding.SingleGamepad(*id), nil
	}
	return binding.GamepadDevice{}, fmt.Errorf("unknown gamepad scope %q", scope)
}

var modNames = map[string]binding.ModKeys{
	"ctrl":    binding.ModControl,
	"control": binding.ModControl,
	"shift":   binding.ModShift,
	"alt":     binding.ModAlt,
	"super":   binding.ModSuper,
}

var mouseButtons = map[string]binding.MouseButton{
	"left":    binding.MouseLeft,
	"right":   binding.MouseRight,
	"middle":  binding.MouseMiddle,
	"back":    binding.MouseBack,
	"forward": binding.MouseForward,
}

func parseBinding(bd *Binding) (binding.Binding, error) {
	switch {
	case bd.Key != "":
		k, err := binding.ParseKey(bd.Key)
		if err != nil {
			return binding.Binding{}, err
		}
		var mods binding.ModKeys
		for _, name := range bd.Mods {
			m, ok := modNames[name]
			if !ok {
				return binding.Binding{}, fmt.Errorf("unknown modifier key %q", name)
			}
			mods |= m
		}
		return binding.KeyWith(k, mods), nil
	case bd.MouseButton != "":
		b, ok := mouseButtons[bd.MouseButton]
		if !ok {
			return binding.Binding{}, fmt.Errorf("unknown mouse button %q", bd.MouseButton)
		}
		return binding.MouseButtonBinding(b), nil
	case bd.Mouse == "motion":
		return binding.MouseMotionBinding(), nil
	case bd.Mouse == "wheel":
		return binding.MouseWheelBinding(), nil
	case bd.PadButton != nil:
		return binding.GamepadButtonBinding(binding.GamepadButton(*bd.PadButton)), nil
	case bd.PadAxis != nil:
		return binding.GamepadAxisBinding(binding.GamepadAxis(*bd.PadAxis)), nil
	}
	return binding.Binding{}, fmt.Errorf("binding declares no input source")
}
