package terminput

import (
	"errors"
	"time"
)

// DefaultRepeatWindow is the default auto-repeat detection window. It
// sits just above the interval of a typical 25-30 cps terminal repeat
// rate and well below human double-tap speed.
const DefaultRepeatWindow = 40 * time.Millisecond

// DecoderOptions configures decode heuristics.
type DecoderOptions struct {
	// RepeatWindow bounds the gap between identical key presses that
	// the decoder will attribute to key auto-repeat. Zero selects
	// DefaultRepeatWindow; negative disables repeat detection.
	RepeatWindow time.Duration
}

// Decoder translates driver signals into Events. It owns the paste-mode
// state machine and the repeat tracker; it is not safe for concurrent
// use, matching the single-reader model of terminal input.
type Decoder struct {
	drv  Driver
	opts DecoderOptions

	pasting bool

	// Repeat tracking
	lastKey  KeyInput
	lastMods Modifiers
	lastAt   time.Time

	now func() time.Time
}

// NewDecoder creates a decoder over drv.
func NewDecoder(drv Driver, opts ...DecoderOptions) *Decoder {
	d := &Decoder{
		drv: drv,
		now: time.Now,
	}
	if len(opts) > 0 {
		d.opts = opts[0]
	}
	if d.opts.RepeatWindow == 0 {
		d.opts.RepeatWindow = DefaultRepeatWindow
	}
	return d
}

// Next blocks until one event is available and returns it. A *DecodeError
// means the current signal could not be classified; it is recoverable,
// the decoder state is untouched and the next call resumes cleanly.
// Other errors come from the driver itself.
func (d *Decoder) Next() (Event, error) {
	for {
		sig, err := d.drv.ReadSignal()
		if err != nil {
			if errors.Is(err, ErrUnknownSequence) {
				return nil, &DecodeError{cause: err}
			}
			return nil, err
		}

		switch sig.Kind {
		case SignalRune:
			return d.decodeRune(sig.Rune, sig.Mods), nil

		case SignalByte:
			// Invalid UTF-8 is not an error; preserve the byte
			return d.keyPress(sig.Mods, RawByte(sig.Byte)), nil

		case SignalSpecial:
			// Driver codes pass through opaquely, no normalization
			return d.keyPress(sig.Mods, SpecialKey(sig.Key)), nil

		case SignalKeyRelease:
			d.resetRepeat()
			return KeyRelease{Modifiers: sig.Mods, Key: releaseInput(sig)}, nil

		case SignalMouse:
			d.resetRepeat()
			return decodeMouse(sig.Mouse), nil

		case SignalPasteBegin:
			if d.pasting {
				continue // no nested paste regions
			}
			d.pasting = true
			d.resetRepeat()
			return PasteBegin{}, nil

		case SignalPasteEnd:
			if !d.pasting {
				continue // stray end marker
			}
			d.pasting = false
			d.resetRepeat()
			return PasteEnd{}, nil

		case SignalResize:
			d.resetRepeat()
			return Resize{Width: sig.Width, Height: sig.Height}, nil

		case SignalUnknown:
			return nil, &DecodeError{cause: ErrUnknownSequence}

		default:
			continue
		}
	}
}

// decodeRune applies the control-character heuristic: bytes 0x01-0x1A
// are what a terminal sends for Ctrl held with a letter, so outside a
// paste they decode as ModCtrl plus the printable letter. Inside a paste
// the heuristic is suppressed and the literal codepoint is surfaced, so
// pasted content can never be reinterpreted as a command.
func (d *Decoder) decodeRune(r rune, mods Modifiers) KeyPress {
	if !d.pasting && r >= 0x01 && r <= 0x1a {
		return d.keyPress(mods|ModCtrl, Codepoint('a'+r-1))
	}
	return d.keyPress(mods, Codepoint(r))
}

func (d *Decoder) keyPress(mods Modifiers, key KeyInput) KeyPress {
	return KeyPress{
		Modifiers: mods,
		Key:       key,
		IsRepeat:  d.detectRepeat(mods, key),
	}
}

// detectRepeat attributes a key press to auto-repeat when an identical
// press arrived within the repeat window. Best-effort: absence of
// evidence means false, and detection is disabled inside pastes where
// bulk input would trivially look like repeats.
func (d *Decoder) detectRepeat(mods Modifiers, key KeyInput) bool {
	if d.pasting || d.opts.RepeatWindow < 0 {
		d.resetRepeat()
		return false
	}
	now := d.now()
	repeat := d.lastKey != nil &&
		key == d.lastKey &&
		mods == d.lastMods &&
		now.Sub(d.lastAt) <= d.opts.RepeatWindow
	d.lastKey = key
	d.lastMods = mods
	d.lastAt = now
	return repeat
}

// resetRepeat forgets the previous key so the next press can never be
// misattributed across a non-key event.
func (d *Decoder) resetRepeat() {
	d.lastKey = nil
}

// decodeMouse lifts modifier report bits out of the button mask. The
// bits are only trustworthy on button-state changes; on pure motion
// they are dropped along with the rest of the modifier bits.
func decodeMouse(rep MouseReport) Mouse {
	var mods Modifiers
	if rep.ButtonChange {
		if rep.Buttons&MaskShift != 0 {
			mods |= ModShift
		}
		if rep.Buttons&MaskAlt != 0 {
			mods |= ModAlt
		}
		if rep.Buttons&MaskCtrl != 0 {
			mods |= ModCtrl
		}
	}
	return Mouse{
		DeviceID:  rep.DeviceID,
		Modifiers: mods,
		Buttons:   rep.Buttons &^ maskModifiers,
		X:         rep.X,
		Y:         rep.Y,
	}
}

// releaseInput picks the key payload for a release signal.
func releaseInput(sig Signal) KeyInput {
	if sig.Rune != 0 {
		return Codepoint(sig.Rune)
	}
	return SpecialKey(sig.Key)
}
