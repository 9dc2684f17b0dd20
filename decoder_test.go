package terminput

import (
	"errors"
	"io"
	"testing"
	"time"
)

// scriptDriver replays a fixed sequence of signals, then EOF
type scriptDriver struct {
	steps []scriptStep

	escDelay time.Duration
	closed   int
}

type scriptStep struct {
	sig Signal
	err error
}

func sigs(ss ...Signal) []scriptStep {
	steps := make([]scriptStep, len(ss))
	for i, s := range ss {
		steps[i] = scriptStep{sig: s}
	}
	return steps
}

func (d *scriptDriver) ReadSignal() (Signal, error) {
	if len(d.steps) == 0 {
		return Signal{}, io.EOF
	}
	st := d.steps[0]
	d.steps = d.steps[1:]
	return st.sig, st.err
}

func (d *scriptDriver) SetEscapeDelay(delay time.Duration) { d.escDelay = delay }

func (d *scriptDriver) Close() error {
	d.closed++
	return nil
}

func mustNext(t *testing.T, d *Decoder) Event {
	t.Helper()
	ev, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	return ev
}

func TestDecodePrintable(t *testing.T) {
	tests := []struct {
		name string
		r    rune
	}{
		{"Letter", 'a'},
		{"Upper", 'Z'},
		{"Digit", '1'},
		{"Unicode", 'é'},
		{"Space", ' '},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(&scriptDriver{steps: sigs(runeSig(tt.r))})
			ev := mustNext(t, d)
			want := KeyPress{Modifiers: ModNone, Key: Codepoint(tt.r)}
			if ev != want {
				t.Errorf("Expected %+v, got %+v", want, ev)
			}
		})
	}
}

func TestDecodeControlHeuristic(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want KeyPress
	}{
		{"Ctrl-A", runeSig(0x01),
			KeyPress{Modifiers: ModCtrl, Key: Codepoint('a')}},
		{"Ctrl-Z", runeSig(0x1a),
			KeyPress{Modifiers: ModCtrl, Key: Codepoint('z')}},
		{"Tab decodes as Ctrl-I", runeSig(0x09),
			KeyPress{Modifiers: ModCtrl, Key: Codepoint('i')}},
		{"Alt prefix is preserved", Signal{Kind: SignalRune, Rune: 0x03, Mods: ModAlt},
			KeyPress{Modifiers: ModCtrl | ModAlt, Key: Codepoint('c')}},
		{"DEL is not a Ctrl letter", runeSig(0x7f),
			KeyPress{Modifiers: ModNone, Key: Codepoint(0x7f)}},
		{"NUL is not a Ctrl letter", runeSig(0x00),
			KeyPress{Modifiers: ModNone, Key: Codepoint(0x00)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(&scriptDriver{steps: sigs(tt.sig)})
			ev := mustNext(t, d)
			if ev != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, ev)
			}
		})
	}
}

func TestDecodeSpecialPassthrough(t *testing.T) {
	d := NewDecoder(&scriptDriver{steps: sigs(
		specialSig(KeyUp, ModNone),
		specialSig(KeyDelete, ModCtrl),
	)})

	if ev := mustNext(t, d); ev != (KeyPress{Modifiers: ModNone, Key: SpecialKey(KeyUp)}) {
		t.Errorf("Expected KeyUp passthrough, got %+v", ev)
	}
	if ev := mustNext(t, d); ev != (KeyPress{Modifiers: ModCtrl, Key: SpecialKey(KeyDelete)}) {
		t.Errorf("Expected Ctrl+Delete passthrough, got %+v", ev)
	}
}

func TestDecodeInvalidByte(t *testing.T) {
	// A malformed byte must not corrupt decoding of later input
	d := NewDecoder(&scriptDriver{steps: sigs(
		Signal{Kind: SignalByte, Byte: 0x80},
		runeSig('a'),
	)})

	if ev := mustNext(t, d); ev != (KeyPress{Modifiers: ModNone, Key: RawByte(0x80)}) {
		t.Errorf("Expected RawByte keypress, got %+v", ev)
	}
	if ev := mustNext(t, d); ev != (KeyPress{Modifiers: ModNone, Key: Codepoint('a')}) {
		t.Errorf("Expected clean decode after invalid byte, got %+v", ev)
	}
}

func TestDecodePasteSuppressesHeuristic(t *testing.T) {
	d := NewDecoder(&scriptDriver{steps: sigs(
		runeSig(0x01),
		Signal{Kind: SignalPasteBegin},
		runeSig(0x01),
		Signal{Kind: SignalPasteEnd},
		runeSig(0x01),
	)})

	want := []Event{
		KeyPress{Modifiers: ModCtrl, Key: Codepoint('a')},
		PasteBegin{},
		KeyPress{Modifiers: ModNone, Key: Codepoint(0x01)}, // literal inside paste
		PasteEnd{},
		KeyPress{Modifiers: ModCtrl, Key: Codepoint('a')},
	}
	for i, w := range want {
		if ev := mustNext(t, d); ev != w {
			t.Errorf("event %d: expected %+v, got %+v", i, w, ev)
		}
	}
}

func TestDecodePasteBracketing(t *testing.T) {
	// Redundant markers are swallowed: every PasteBegin is followed by
	// exactly one PasteEnd before another PasteBegin
	d := NewDecoder(&scriptDriver{steps: sigs(
		Signal{Kind: SignalPasteEnd}, // stray end before any begin
		Signal{Kind: SignalPasteBegin},
		Signal{Kind: SignalPasteBegin}, // nested begin
		runeSig('x'),
		Signal{Kind: SignalPasteEnd},
		Signal{Kind: SignalPasteEnd}, // double end
		Signal{Kind: SignalPasteBegin},
		Signal{Kind: SignalPasteEnd},
	)})

	var events []Event
	for {
		ev, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		events = append(events, ev)
	}

	depth := 0
	for i, ev := range events {
		switch ev.(type) {
		case PasteBegin:
			depth++
			if depth > 1 {
				t.Fatalf("event %d: nested PasteBegin", i)
			}
		case PasteEnd:
			depth--
			if depth < 0 {
				t.Fatalf("event %d: PasteEnd without begin", i)
			}
		}
	}
	if depth != 0 {
		t.Errorf("Expected balanced paste markers, final depth %d", depth)
	}

	want := []Event{
		PasteBegin{},
		KeyPress{Modifiers: ModNone, Key: Codepoint('x')},
		PasteEnd{},
		PasteBegin{},
		PasteEnd{},
	}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, want[i], events[i])
		}
	}
}

func TestDecodeMouse(t *testing.T) {
	tests := []struct {
		name string
		rep  MouseReport
		want Mouse
	}{
		{"Button change extracts modifiers",
			MouseReport{Buttons: MaskButton1 | MaskCtrl, X: 3, Y: 4, ButtonChange: true},
			Mouse{Modifiers: ModCtrl, Buttons: MaskButton1, X: 3, Y: 4}},
		{"Motion drops modifier bits",
			MouseReport{Buttons: MaskButton1 | MaskCtrl, X: 5, Y: 6, ButtonChange: false},
			Mouse{Modifiers: ModNone, Buttons: MaskButton1, X: 5, Y: 6}},
		{"Wheel with shift and alt",
			MouseReport{Buttons: MaskWheelDown | MaskShift | MaskAlt, X: 0, Y: 0, ButtonChange: true},
			Mouse{Modifiers: ModShift | ModAlt, Buttons: MaskWheelDown}},
		{"Device id passthrough",
			MouseReport{DeviceID: 2, Buttons: MaskButton2, ButtonChange: true},
			Mouse{DeviceID: 2, Buttons: MaskButton2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(&scriptDriver{steps: sigs(Signal{Kind: SignalMouse, Mouse: tt.rep})})
			if ev := mustNext(t, d); ev != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, ev)
			}
		})
	}
}

func TestDecodeResize(t *testing.T) {
	d := NewDecoder(&scriptDriver{steps: sigs(
		Signal{Kind: SignalResize, Width: 120, Height: 40},
	)})
	if ev := mustNext(t, d); ev != (Resize{Width: 120, Height: 40}) {
		t.Errorf("Expected Resize{120 40}, got %+v", ev)
	}
}

func TestDecodeKeyRelease(t *testing.T) {
	d := NewDecoder(&scriptDriver{steps: sigs(
		Signal{Kind: SignalKeyRelease, Rune: 'a', Mods: ModShift},
		Signal{Kind: SignalKeyRelease, Key: KeyF5},
	)})

	if ev := mustNext(t, d); ev != (KeyRelease{Modifiers: ModShift, Key: Codepoint('a')}) {
		t.Errorf("Expected rune release, got %+v", ev)
	}
	if ev := mustNext(t, d); ev != (KeyRelease{Key: SpecialKey(KeyF5)}) {
		t.Errorf("Expected special release, got %+v", ev)
	}
}

func TestDecodeErrorRecovery(t *testing.T) {
	drv := &scriptDriver{steps: []scriptStep{
		{sig: Signal{Kind: SignalPasteBegin}},
		{err: ErrUnknownSequence},
		{sig: runeSig(0x01)},
	}}
	d := NewDecoder(drv)

	if ev := mustNext(t, d); ev != (PasteBegin{}) {
		t.Fatalf("Expected PasteBegin, got %+v", ev)
	}

	_, err := d.Next()
	var dec *DecodeError
	if !errors.As(err, &dec) {
		t.Fatalf("Expected DecodeError, got %v", err)
	}
	if !errors.Is(err, ErrUnknownSequence) {
		t.Errorf("Expected DecodeError to wrap ErrUnknownSequence")
	}

	// Decoder state survived the failure: still pasting, heuristic
	// still suppressed
	if ev := mustNext(t, d); ev != (KeyPress{Modifiers: ModNone, Key: Codepoint(0x01)}) {
		t.Errorf("Expected clean literal decode after error, got %+v", ev)
	}
}

func TestDecodeUnknownSignalKind(t *testing.T) {
	// Drivers that pass SignalUnknown through directly instead of
	// erroring still produce a DecodeError
	d := NewDecoder(&scriptDriver{steps: sigs(Signal{Kind: SignalUnknown}, runeSig('a'))})

	_, err := d.Next()
	var dec *DecodeError
	if !errors.As(err, &dec) {
		t.Fatalf("Expected DecodeError, got %v", err)
	}
	if ev := mustNext(t, d); ev != (KeyPress{Modifiers: ModNone, Key: Codepoint('a')}) {
		t.Errorf("Expected clean decode after error, got %+v", ev)
	}
}

func TestDecodeRepeat(t *testing.T) {
	base := time.Unix(1000, 0)

	tests := []struct {
		name    string
		signals []Signal
		gaps    []time.Duration // clock advance before each signal
		want    []bool          // expected IsRepeat per KeyPress
	}{
		{"Fast identical presses are repeats",
			[]Signal{runeSig('a'), runeSig('a'), runeSig('a')},
			[]time.Duration{0, 10 * time.Millisecond, 10 * time.Millisecond},
			[]bool{false, true, true}},
		{"Slow identical presses are not",
			[]Signal{runeSig('a'), runeSig('a')},
			[]time.Duration{0, 200 * time.Millisecond},
			[]bool{false, false}},
		{"Different key breaks the run",
			[]Signal{runeSig('a'), runeSig('b'), runeSig('b')},
			[]time.Duration{0, 5 * time.Millisecond, 5 * time.Millisecond},
			[]bool{false, false, true}},
		{"Different modifiers break the run",
			[]Signal{runeSig('a'), {Kind: SignalRune, Rune: 'a', Mods: ModAlt}},
			[]time.Duration{0, 5 * time.Millisecond},
			[]bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(&scriptDriver{steps: sigs(tt.signals...)})
			now := base
			d.now = func() time.Time { return now }

			for i, wantRepeat := range tt.want {
				now = now.Add(tt.gaps[i])
				ev := mustNext(t, d)
				kp, ok := ev.(KeyPress)
				if !ok {
					t.Fatalf("event %d: expected KeyPress, got %+v", i, ev)
				}
				if kp.IsRepeat != wantRepeat {
					t.Errorf("event %d: expected IsRepeat %v, got %v", i, wantRepeat, kp.IsRepeat)
				}
			}
		})
	}
}

func TestDecodeRepeatNotAcrossOtherEvents(t *testing.T) {
	d := NewDecoder(&scriptDriver{steps: sigs(
		runeSig('a'),
		Signal{Kind: SignalResize, Width: 80, Height: 24},
		runeSig('a'),
	)})
	now := time.Unix(1000, 0)
	d.now = func() time.Time { return now }

	mustNext(t, d) // 'a'
	mustNext(t, d) // resize
	kp := mustNext(t, d).(KeyPress)
	if kp.IsRepeat {
		t.Errorf("Expected no repeat attribution across a resize event")
	}
}

func TestDecodeRepeatDisabledInsidePaste(t *testing.T) {
	d := NewDecoder(&scriptDriver{steps: sigs(
		Signal{Kind: SignalPasteBegin},
		runeSig('x'),
		runeSig('x'),
		Signal{Kind: SignalPasteEnd},
	)})
	now := time.Unix(1000, 0)
	d.now = func() time.Time { return now }

	mustNext(t, d) // PasteBegin
	for i := 0; i < 2; i++ {
		kp := mustNext(t, d).(KeyPress)
		if kp.IsRepeat {
			t.Errorf("pasted key %d: expected IsRepeat false inside paste", i)
		}
	}
}

func TestDecodeRepeatDisabledByOption(t *testing.T) {
	d := NewDecoder(
		&scriptDriver{steps: sigs(runeSig('a'), runeSig('a'))},
		DecoderOptions{RepeatWindow: -1},
	)
	now := time.Unix(1000, 0)
	d.now = func() time.Time { return now }

	mustNext(t, d)
	kp := mustNext(t, d).(KeyPress)
	if kp.IsRepeat {
		t.Errorf("Expected repeat detection disabled with negative window")
	}
}
