package terminput

import "strings"

// Modifiers is an opaque bitmap of modifier keys held during an event.
// Values are immutable; all operations return new values. Unused upper
// bits are reserved so keys like Meta can be added without renumbering
// the existing constants.
type Modifiers uint8

const (
	ModNone  Modifiers = 0
	ModShift Modifiers = 1 << 0
	ModAlt   Modifiers = 1 << 1
	ModCtrl  Modifiers = 1 << 2
)

// Or returns the union of m and other.
func (m Modifiers) Or(other Modifiers) Modifiers {
	return m | other
}

// And returns the intersection of m and other.
func (m Modifiers) And(other Modifiers) Modifiers {
	return m & other
}

// Without returns m with other's flags cleared.
func (m Modifiers) Without(other Modifiers) Modifiers {
	return m &^ other
}

// Has reports whether every flag in other is set in m.
func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other && other != ModNone
}

// IsEmpty reports whether no flags are set.
func (m Modifiers) IsEmpty() bool {
	return m == ModNone
}

// String returns a name like "Ctrl+Alt", or "" for ModNone.
func (m Modifiers) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}
