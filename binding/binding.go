package binding

import (
	"fmt"

	"github.com/lixenwraith/inputflow/action"
)

// Source discriminates the physical input a Binding reads.
type Source uint8

const (
	SourceKey Source = iota
	SourceMouseButton
	SourceMouseMotion
	SourceMouseWheel
	SourceGamepadButton
	SourceGamepadAxis
)

func (s Source) String() string {
	switch s {
	case SourceKey:
		return "Key"
	case SourceMouseButton:
		return "MouseButton"
	case SourceMouseMotion:
		return "MouseMotion"
	case SourceMouseWheel:
		return "MouseWheel"
	case SourceGamepadButton:
		return "GamepadButton"
	case SourceGamepadAxis:
		return "GamepadAxis"
	}
	return "Unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
)

// GamepadButton identifies a gamepad button by its platform index.
type GamepadButton uint8

// GamepadAxis identifies a gamepad analog axis by its platform index.
type GamepadAxis uint8

// Binding describes one physical input source an action reads. The zero
// value binds the key with rune 0 and no modifiers, which never matches a
// real device; use the constructors. Binding is comparable so it can key
// per-tick consumption sets.
type Binding struct {
	Source Source

	// Key and Mods are meaningful for SourceKey. Mods is the exact
	// modifier mask required for the key to read as pressed.
	Key  Key
	Mods ModKeys

	// Button is meaningful for SourceMouseButton.
	Button MouseButton

	// PadButton and PadAxis are meaningful for the gamepad sources.
	PadButton GamepadButton
	PadAxis   GamepadAxis
}

// KeyBinding binds a keyboard key with no required modifiers.
func KeyBinding(k Key) Binding {
	return Binding{Source: SourceKey, Key: k}
}

// KeyWith binds a keyboard key requiring an exact modifier mask.
func KeyWith(k Key, mods ModKeys) Binding {
	return Binding{Source: SourceKey, Key: k, Mods: mods}
}

// MouseButtonBinding binds a mouse button.
func MouseButtonBinding(b MouseButton) Binding {
	return Binding{Source: SourceMouseButton, Button: b}
}

// MouseMotionBinding binds relative mouse movement.
func MouseMotionBinding() Binding {
	return Binding{Source: SourceMouseMotion}
}

// MouseWheelBinding binds scroll wheel movement.
func MouseWheelBinding() Binding {
	return Binding{Source: SourceMouseWheel}
}

// GamepadButtonBinding binds a gamepad button.
func GamepadButtonBinding(b GamepadButton) Binding {
	return Binding{Source: SourceGamepadButton, PadButton: b}
}

// GamepadAxisBinding binds a gamepad analog axis.
func GamepadAxisBinding(a GamepadAxis) Binding {
	return Binding{Source: SourceGamepadAxis, PadAxis: a}
}

// Dim reports the value dimension the source naturally produces.
func (b Binding) Dim() action.Dim {
	switch b.Source {
	case SourceKey, SourceMouseButton, SourceGamepadButton:
		return action.DimBool
	case SourceGamepadAxis:
		return action.DimAxis1D
	case SourceMouseMotion, SourceMouseWheel:
		return action.DimAxis2D
	}
	return action.DimBool
}

// ModKeyCount reports how many modifier keys the binding requires.
// Contexts sort their actions by this so Ctrl+C wins over C when both
// could consume the same key.
func (b Binding) ModKeyCount() int {
	if b.Source != SourceKey {
		return 0
	}
	return b.Mods.Count()
}

func (b Binding) String() string {
	switch b.Source {
	case SourceKey:
		if b.Mods != 0 {
			return fmt.Sprintf("%s + %s", b.Mods, b.Key)
		}
		return b.Key.String()
	case SourceMouseButton:
		return fmt.Sprintf("Mouse%d", b.Button)
	case SourceMouseMotion:
		return "MouseMotion"
	case SourceMouseWheel:
		return "MouseWheel"
	case SourceGamepadButton:
		return fmt.Sprintf("PadButton%d", b.PadButton)
	case SourceGamepadAxis:
		return fmt.Sprintf("PadAxis%d", b.PadAxis)
	}
	return "Unknown"
}

// GamepadScope selects which gamepads a context's bindings read.
type GamepadScope uint8

const (
	// GamepadAny sums readings across every connected pad.
	GamepadAny GamepadScope = iota
	// GamepadSingle reads one pad by id.
	GamepadSingle
	// GamepadNone ignores gamepad input entirely.
	GamepadNone
)

// GamepadDevice scopes gamepad input for a context instance.
type GamepadDevice struct {
	Scope GamepadScope
	ID    int
}

// AnyGamepad reads all connected pads.
func AnyGamepad() GamepadDevice { return GamepadDevice{Scope: GamepadAny} }

// SingleGamepad reads only the pad with the given id.
func SingleGamepad(id int) GamepadDevice {
	return GamepadDevice{Scope: GamepadSingle, ID: id}
}

// NoGamepad ignores gamepad input.
func NoGamepad() GamepadDevice { return GamepadDevice{Scope: GamepadNone} }
