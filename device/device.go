// Package device holds the raw input state the engine samples each tick.
// Hosts push key, mouse, and gamepad readings into a State; the engine
// pulls per-binding values out of it. Motion and wheel readings are
// per-tick deltas and must be cleared by the host after each tick.
package device

import (
	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/binding"
)

// Gamepad is one connected pad's button and axis state.
type Gamepad struct {
	buttons map[binding.GamepadButton]bool
	axes    map[binding.GamepadAxis]float64
}

func newGamepad() *Gamepad {
	return &Gamepad{
		buttons: make(map[binding.GamepadButton]bool),
		axes:    make(map[binding.GamepadAxis]float64),
	}
}

// State aggregates all device readings for the current tick.
type State struct {
	keys     map[binding.Key]bool
	mods     binding.ModKeys
	buttons  map[binding.MouseButton]bool
	motionX  float64
	motionY  float64
	wheelX   float64
	wheelY   float64
	gamepads map[int]*Gamepad
}

func NewState() *State {
	return &State{
		keys:     make(map[binding.Key]bool),
		buttons:  make(map[binding.MouseButton]bool),
		gamepads: make(map[int]*Gamepad),
	}
}

// PressKey marks a key down.
func (s *State) PressKey(k binding.Key) { s.keys[k] = true }

// ReleaseKey marks a key up.
func (s *State) ReleaseKey(k binding.Key) { delete(s.keys, k) }

// SetMods replaces the currently held modifier mask.
func (s *State) SetMods(m binding.ModKeys) { s.mods = m }

// Mods returns the currently held modifier mask.
func (s *State) Mods() binding.ModKeys { return s.mods }

// PressMouse marks a mouse button down.
func (s *State) PressMouse(b binding.MouseButton) { s.buttons[b] = true }

// ReleaseMouse marks a mouse button up.
func (s *State) ReleaseMouse(b binding.MouseButton) { delete(s.buttons, b) }

// AddMotion accumulates relative mouse movement for this tick.
func (s *State) AddMotion(dx, dy float64) {
	s.motionX += dx
	s.motionY += dy
}

// AddWheel accumulates scroll movement for this tick.
func (s *State) AddWheel(dx, dy float64) {
	s.wheelX += dx
	s.wheelY += dy
}

func (s *State) pad(id int) *Gamepad {
	g, ok := s.gamepads[id]
	if !ok {
		g = newGamepad()
		s.gamepads[id] = g
	}
	return g
}

// SetPadButton sets a gamepad button's pressed state.
func (s *State) SetPadButton(id int, b binding.GamepadButton, down bool) {
	if down {
		s.pad(id).buttons[b] = true
	} else {
		delete(s.pad(id).buttons, b)
	}
}

// SetPadAxis sets a gamepad axis reading.
func (s *State) SetPadAxis(id int, a binding.GamepadAxis, v float64) {
	s.pad(id).axes[a] = v
}

// DisconnectPad drops all state for a gamepad.
func (s *State) DisconnectPad(id int) { delete(s.gamepads, id) }

// ClearDeltas zeroes the per-tick motion and wheel accumulators. Hosts
// call this after every engine tick.
func (s *State) ClearDeltas() {
	s.motionX, s.motionY = 0, 0
	s.wheelX, s.wheelY = 0, 0
}

// Read returns the current raw value for a binding. Key bindings match
// only when the held modifier mask equals the binding's mask exactly, so
// Ctrl+C and bare C never read as pressed together. Gamepad sources honor
// the context's device scope: Any sums across pads, Single reads one pad,
// None reads nothing.
func (s *State) Read(b binding.Binding, pad binding.GamepadDevice) action.Value {
	switch b.Source {
	case binding.SourceKey:
		return action.Bool(s.keys[b.Key] && s.mods == b.Mods)
	case binding.SourceMouseButton:
		return action.Bool(s.buttons[b.Button])
	case binding.SourceMouseMotion:
		return action.Axis2D(s.motionX, s.motionY)
	case binding.SourceMouseWheel:
		return action.Axis2D(s.wheelX, s.wheelY)
	case binding.SourceGamepadButton:
		switch pad.Scope {
		case binding.GamepadNone:
			return action.Bool(false)
		case binding.GamepadSingle:
			g, ok := s.gamepads[pad.ID]
			return action.Bool(ok && g.buttons[b.PadButton])
		default:
			for _, g := range s.gamepads {
				if g.buttons[b.PadButton] {
					return action.Bool(true)
				}
			}
			return action.Bool(false)
		}
	case binding.SourceGamepadAxis:
		switch pad.Scope {
		case binding.GamepadNone:
			return action.Axis1D(0)
		case binding.GamepadSingle:
			g, ok := s.gamepads[pad.ID]
			if !ok {
				return action.Axis1D(0)
			}
			return action.Axis1D(g.axes[b.PadAxis])
		default:
			sum := 0.0
			for _, g := range s.gamepads {
				sum += g.axes[b.PadAxis]
			}
			return action.Axis1D(sum)
		}
	}
	return action.Bool(false)
}
