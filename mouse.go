package terminput

import "strings"

// MouseMask is a mouse button-state bitmask. At the driver boundary it
// may also carry the shift/alt/ctrl bits the terminal encodes in mouse
// reports; the decoder strips those into Modifiers before events reach
// the application.
type MouseMask uint16

const (
	MaskNone MouseMask = 0

	MaskButton1 MouseMask = 1 << 0 // left
	MaskButton2 MouseMask = 1 << 1 // middle
	MaskButton3 MouseMask = 1 << 2 // right

	MaskWheelUp   MouseMask = 1 << 3
	MaskWheelDown MouseMask = 1 << 4

	// Modifier report bits, driver boundary only
	MaskShift MouseMask = 1 << 8
	MaskAlt   MouseMask = 1 << 9
	MaskCtrl  MouseMask = 1 << 10
)

// maskModifiers covers the modifier report bits.
const maskModifiers = MaskShift | MaskAlt | MaskCtrl

// String returns button names like "left+wheel_up", or "none".
func (m MouseMask) String() string {
	var parts []string
	if m&MaskButton1 != 0 {
		parts = append(parts, "left")
	}
	if m&MaskButton2 != 0 {
		parts = append(parts, "middle")
	}
	if m&MaskButton3 != 0 {
		parts = append(parts, "right")
	}
	if m&MaskWheelUp != 0 {
		parts = append(parts, "wheel_up")
	}
	if m&MaskWheelDown != 0 {
		parts = append(parts, "wheel_down")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}
