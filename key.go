package terminput

// Key identifies a non-printable key reported by a driver. Codes are
// driver-defined and passed through the decoder opaquely; both bundled
// drivers use the constants below. Printable input never carries a Key,
// it arrives as a Codepoint.
type Key uint16

// Key constants - designed for expansion
const (
	KeyNone Key = iota

	KeyEscape
	KeyBacktab // Shift+Tab

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)
