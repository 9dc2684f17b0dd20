package terminput

import (
	"errors"
	"fmt"
	"time"
)

// SignalKind distinguishes raw signal categories at the driver boundary
type SignalKind uint8

const (
	SignalNone SignalKind = iota
	SignalRune             // decoded Unicode scalar, possibly a control character
	SignalByte             // byte that is not valid UTF-8
	SignalSpecial          // driver special-key code
	SignalKeyRelease       // key-up, on terminals that report it
	SignalMouse
	SignalPasteBegin
	SignalPasteEnd
	SignalResize
	SignalUnknown // well-formed but unclassifiable input, fully consumed
)

// MouseReport is a raw mouse signal. Buttons carries the button state
// after the event plus the modifier report bits; ButtonChange is false
// for pure motion, where the modifier bits are unreliable.
type MouseReport struct {
	DeviceID     uint16
	Buttons      MouseMask
	X, Y         int
	ButtonChange bool
}

// Signal is one partially decoded unit of terminal input as produced by
// a Driver. Kind selects which payload fields are meaningful.
type Signal struct {
	Kind SignalKind

	Rune rune      // SignalRune
	Byte byte      // SignalByte
	Key  Key       // SignalSpecial, SignalKeyRelease
	Mods Modifiers // driver-known modifiers for rune/special/release signals

	Mouse MouseReport // SignalMouse

	Width, Height int // SignalResize
}

// Driver supplies raw terminal signals to a Decoder. Implementations own
// terminal mode setup (raw mode, bracketed paste, mouse reporting) and
// the escape-sequence timing; the decoder owns everything above that.
type Driver interface {
	// ReadSignal blocks until one signal is available. Unclassifiable
	// input is reported as ErrUnknownSequence after the offending bytes
	// have been fully consumed, so a retry starts clean.
	ReadSignal() (Signal, error)

	// SetEscapeDelay configures how long to wait after an ESC byte
	// before treating it as a standalone Escape keypress rather than
	// the start of a sequence. Out-of-range values are clamped to the
	// driver's supported range.
	SetEscapeDelay(d time.Duration)

	// Close releases the terminal, restoring any modes the driver set.
	Close() error
}

// ErrUnknownSequence reports input the driver could not classify into
// any known signal shape. Recoverable: the bytes were consumed and the
// next read starts clean.
var ErrUnknownSequence = errors.New("terminput: unrecognized input sequence")

// DecodeError wraps a failure to classify one raw signal into an Event.
// Recoverable by retry: decoder state is untouched and the next call to
// NextEvent resumes as if the failed signal had not occurred.
type DecodeError struct {
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("terminput: decode: %v", e.cause)
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}
