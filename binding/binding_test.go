package binding

import (
	"testing"

	"github.com/lixenwraith/inputflow/action"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		name string
		want Key
	}{
		{"a", 'a'},
		{"Z", 'Z'},
		{"space", KeySpace},
		{"Escape", KeyEscape},
		{"f5", KeyF5},
		{"pgup", KeyPageUp},
	}
	for _, c := range cases {
		got, err := ParseKey(c.name)
		if err != nil {
			t.Errorf("ParseKey(%q): %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseKey(%q) = %d, want %d", c.name, got, c.want)
		}
	}

	if _, err := ParseKey("notakey"); err == nil {
		t.Error("expected error for unknown key name")
	}
}

func TestBindingDim(t *testing.T) {
	if d := KeyBinding('w').Dim(); d != action.DimBool {
		t.Errorf("key dim = %v, want Bool", d)
	}
	if d := GamepadAxisBinding(0).Dim(); d != action.DimAxis1D {
		t.Errorf("axis dim = %v, want Axis1D", d)
	}
	if d := MouseMotionBinding().Dim(); d != action.DimAxis2D {
		t.Errorf("motion dim = %v, want Axis2D", d)
	}
}

func TestModKeyCount(t *testing.T) {
	if n := KeyBinding('c').ModKeyCount(); n != 0 {
		t.Errorf("plain key mod count = %d, want 0", n)
	}
	if n := KeyWith('c', ModControl|ModShift).ModKeyCount(); n != 2 {
		t.Errorf("ctrl+shift mod count = %d, want 2", n)
	}
	if n := MouseButtonBinding(MouseLeft).ModKeyCount(); n != 0 {
		t.Errorf("mouse mod count = %d, want 0", n)
	}
}

func TestBindingComparable(t *testing.T) {
	seen := map[Binding]bool{}
	seen[KeyBinding('a')] = true
	seen[KeyWith('a', ModControl)] = true
	if !seen[KeyBinding('a')] {
		t.Error("identical bindings should hash equal")
	}
	if seen[KeyBinding('b')] {
		t.Error("distinct bindings should not collide")
	}
}

func TestModKeysString(t *testing.T) {
	s := (ModControl | ModShift).String()
	if s != "Ctrl + Shift" {
		t.Errorf("ModKeys string = %q", s)
	}
}
