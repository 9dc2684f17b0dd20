package terminput

// Event is a single decoded terminal input event. The set is closed:
// KeyPress, KeyRelease, Mouse, PasteBegin, PasteEnd, Resize. Events are
// emitted one at a time, in the order the underlying driver produced the
// raw signals.
//
// Terminal input is inherently lossy. Depending on the terminal, some
// modifier keys may never be recorded, key repeats may be
// indistinguishable from fresh presses, pastes may not be bracketed,
// and key releases may never be reported.
type Event interface {
	event()
}

// KeyPress is a single typing action. Outside a paste region control
// characters do not appear here directly; they are heuristically decoded
// into ModCtrl combined with the printable letter.
type KeyPress struct {
	Modifiers Modifiers
	Key       KeyInput

	// IsRepeat reports a detected key auto-repeat. It is best-effort:
	// true only on positive evidence, so real repeats may still arrive
	// with IsRepeat false.
	IsRepeat bool
}

// KeyRelease is a key-up. Kept separate from KeyPress as it is
// supported by very few terminals and usually wants different handling.
type KeyRelease struct {
	Modifiers Modifiers
	Key       KeyInput
}

// Mouse is a motion or button-state change. Modifiers are reliable only
// on button-state changes, not motion; Buttons is the button state after
// the event, with wheel bits set momentarily on scroll.
type Mouse struct {
	DeviceID  uint16
	Modifiers Modifiers
	Buttons   MouseMask
	X, Y      int
}

// PasteBegin marks the start of input produced by a paste rather than
// typing. Until the matching PasteEnd the content should be treated as
// raw text from an untrusted source, never as commands.
type PasteBegin struct{}

// PasteEnd marks the return to normal interaction.
type PasteEnd struct{}

// Resize reports new terminal dimensions.
type Resize struct {
	Width  int
	Height int
}

func (KeyPress) event()   {}
func (KeyRelease) event() {}
func (Mouse) event()      {}
func (PasteBegin) event() {}
func (PasteEnd) event()   {}
func (Resize) event()     {}
