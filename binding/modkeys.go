package binding

import "math/bits"

// ModKeys is a bitset of keyboard modifier keys.
// The number of modifiers on a key binding affects action evaluation order:
// actions holding more specific combinations (Ctrl+C) run before less
// specific ones (C), so they win input consumption.
type ModKeys uint8

const (
	ModControl ModKeys = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// Count returns the number of modifier keys in the set
func (m ModKeys) Count() int {
	return bits.OnesCount8(uint8(m))
}

func (m ModKeys) String() string {
	if m == 0 {
		return ""
	}
	parts := []struct {
		key  ModKeys
		name string
	}{
		{ModControl, "Ctrl"},
		{ModShift, "Shift"},
		{ModAlt, "Alt"},
		{ModSuper, "Super"},
	}
	s := ""
	for _, p := range parts {
		if m&p.key == 0 {
			continue
		}
		if s != "" {
			s += " + "
		}
		s += p.name
	}
	return s
}
