package terminput

import (
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
)

// tcellKeys maps tcell special keys to driver key codes
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:       KeyUp,
	tcell.KeyDown:     KeyDown,
	tcell.KeyLeft:     KeyLeft,
	tcell.KeyRight:    KeyRight,
	tcell.KeyHome:     KeyHome,
	tcell.KeyEnd:      KeyEnd,
	tcell.KeyPgUp:     KeyPageUp,
	tcell.KeyPgDn:     KeyPageDown,
	tcell.KeyInsert:   KeyInsert,
	tcell.KeyDelete:   KeyDelete,
	tcell.KeyBacktab:  KeyBacktab,
	tcell.KeyF1:       KeyF1,
	tcell.KeyF2:       KeyF2,
	tcell.KeyF3:       KeyF3,
	tcell.KeyF4:       KeyF4,
	tcell.KeyF5:       KeyF5,
	tcell.KeyF6:       KeyF6,
	tcell.KeyF7:       KeyF7,
	tcell.KeyF8:       KeyF8,
	tcell.KeyF9:       KeyF9,
	tcell.KeyF10:      KeyF10,
	tcell.KeyF11:      KeyF11,
	tcell.KeyF12:      KeyF12,
}

// TcellDriver adapts a tcell.Screen to the Driver contract. tcell owns
// raw mode and escape timing; this driver lowers its events back to
// Signals so the Decoder stays the single place the input heuristics
// live, whichever driver feeds it.
type TcellDriver struct {
	screen tcell.Screen
	held   MouseMask
}

// NewTcellDriver wraps an initialized screen. The caller should have
// enabled mouse and paste reporting if those events are wanted.
func NewTcellDriver(screen tcell.Screen) *TcellDriver {
	return &TcellDriver{screen: screen}
}

// ReadSignal blocks on the screen's event queue.
func (d *TcellDriver) ReadSignal() (Signal, error) {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return Signal{}, io.EOF
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			return d.keySignal(ev)

		case *tcell.EventPaste:
			if ev.Start() {
				return Signal{Kind: SignalPasteBegin}, nil
			}
			return Signal{Kind: SignalPasteEnd}, nil

		case *tcell.EventMouse:
			return d.mouseSignal(ev), nil

		case *tcell.EventResize:
			w, h := ev.Size()
			return Signal{Kind: SignalResize, Width: w, Height: h}, nil

		case *tcell.EventError:
			return Signal{}, fmt.Errorf("terminput: tcell: %s", ev.Error())

		default:
			// Interrupts and other synthetic events carry no input
			continue
		}
	}
}

func (d *TcellDriver) keySignal(ev *tcell.EventKey) (Signal, error) {
	mods := tcellMods(ev.Modifiers())

	switch key := ev.Key(); {
	case key == tcell.KeyRune:
		return Signal{Kind: SignalRune, Rune: ev.Rune(), Mods: mods}, nil

	case key == tcell.KeyESC:
		return Signal{Kind: SignalSpecial, Key: KeyEscape, Mods: mods}, nil

	case key < 0x20 || key == tcell.KeyDEL:
		// Control byte: hand the raw rune over and strip tcell's Ctrl
		// flag so the decoder's heuristic is the single source of it
		return Signal{Kind: SignalRune, Rune: rune(key), Mods: mods.Without(ModCtrl)}, nil

	default:
		if k, ok := tcellKeys[key]; ok {
			return Signal{Kind: SignalSpecial, Key: k, Mods: mods}, nil
		}
		return Signal{Kind: SignalUnknown}, ErrUnknownSequence
	}
}

func (d *TcellDriver) mouseSignal(ev *tcell.EventMouse) Signal {
	x, y := ev.Position()

	var buttons, wheel MouseMask
	tb := ev.Buttons()
	if tb&tcell.Button1 != 0 {
		buttons |= MaskButton1
	}
	if tb&tcell.Button2 != 0 {
		buttons |= MaskButton3 // tcell Button2 is the secondary (right) button
	}
	if tb&tcell.Button3 != 0 {
		buttons |= MaskButton2 // and Button3 the middle
	}
	if tb&tcell.WheelUp != 0 {
		wheel |= MaskWheelUp
	}
	if tb&tcell.WheelDown != 0 {
		wheel |= MaskWheelDown
	}

	change := buttons != d.held || wheel != MaskNone
	d.held = buttons

	var modBits MouseMask
	mods := tcellMods(ev.Modifiers())
	if mods.Has(ModShift) {
		modBits |= MaskShift
	}
	if mods.Has(ModAlt) {
		modBits |= MaskAlt
	}
	if mods.Has(ModCtrl) {
		modBits |= MaskCtrl
	}

	return Signal{
		Kind: SignalMouse,
		Mouse: MouseReport{
			Buttons:      buttons | wheel | modBits,
			X:            x,
			Y:            y,
			ButtonChange: change,
		},
	}
}

// SetEscapeDelay is accepted for interface symmetry; tcell manages its
// own escape timing internally and exposes no knob for it.
func (d *TcellDriver) SetEscapeDelay(time.Duration) {}

// Close finalizes the screen.
func (d *TcellDriver) Close() error {
	d.screen.Fini()
	return nil
}

func tcellMods(m tcell.ModMask) Modifiers {
	var out Modifiers
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	return out
}
