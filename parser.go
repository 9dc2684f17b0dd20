package terminput

import "unicode/utf8"

// parser assembles raw terminal bytes into Signals. It does no I/O; the
// driver owns buffering and escape-delay timing. held tracks pressed
// mouse buttons across SGR reports so motion can be distinguished from
// button-state changes.
type parser struct {
	held MouseMask
}

// Scan limits for runaway sequences missing their terminator
const (
	maxCSIBody   = 32
	maxSGRParams = 24
)

// parse consumes as much of data as possible and returns the byte count
// consumed plus the signals produced. An incomplete trailing sequence
// consumes nothing past its start; the caller appends more bytes and
// calls again, and the result is the same as if the input had arrived
// whole. Control characters pass through as runes; the Ctrl heuristic
// belongs to the decoder.
func (p *parser) parse(data []byte) (int, []Signal) {
	var sigs []Signal
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			sigs = append(sigs, Signal{Kind: SignalRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			consumed, s, incomplete := p.parseEscape(data[i:])
			if incomplete {
				return i, sigs
			}
			sigs = append(sigs, s)
			i += consumed
			continue
		}

		// Control characters and DEL
		if b < 0x20 || b == 0x7f {
			sigs = append(sigs, Signal{Kind: SignalRune, Rune: rune(b)})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) && n-i < utf8.UTFMax {
			return i, sigs // wait for more data
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			// Not decodable as UTF-8; surface the byte and move on
			sigs = append(sigs, Signal{Kind: SignalByte, Byte: b})
			i++
			continue
		}
		sigs = append(sigs, Signal{Kind: SignalRune, Rune: r})
		i += size
	}
	return i, sigs
}

// parseEscape parses one sequence starting at an ESC byte. A lone
// trailing ESC reports incomplete; the driver resolves it into a
// standalone Escape once the escape delay expires.
func (p *parser) parseEscape(data []byte) (int, Signal, bool) {
	if len(data) < 2 {
		return 0, Signal{}, true
	}

	b := data[1]

	// ESC ESC -> Alt+Escape
	if b == 0x1b {
		return 2, Signal{Kind: SignalSpecial, Key: KeyEscape, Mods: ModAlt}, false
	}

	if b == '[' {
		return p.parseCSI(data)
	}
	if b == 'O' {
		return p.parseSS3(data)
	}

	// Alt + control character or DEL
	if b < 0x20 || b == 0x7f {
		return 2, Signal{Kind: SignalRune, Rune: rune(b), Mods: ModAlt}, false
	}

	// Alt + printable ASCII
	if b < 0x7f {
		return 2, Signal{Kind: SignalRune, Rune: rune(b), Mods: ModAlt}, false
	}

	// Alt + multibyte rune
	if !utf8.FullRune(data[1:]) && len(data)-1 < utf8.UTFMax {
		return 0, Signal{}, true
	}
	r, size := utf8.DecodeRune(data[1:])
	if r == utf8.RuneError && size == 1 {
		// Undecodable byte after ESC: emit the Escape alone and let the
		// byte take the normal path
		return 1, Signal{Kind: SignalSpecial, Key: KeyEscape}, false
	}
	return 1 + size, Signal{Kind: SignalRune, Rune: r, Mods: ModAlt}, false
}

// parseCSI parses a CSI sequence (ESC [ ...) without allocation
func (p *parser) parseCSI(data []byte) (int, Signal, bool) {
	if len(data) < 3 {
		return 0, Signal{}, true
	}

	// SGR mouse: ESC [ < Btn ; X ; Y M/m
	if data[2] == '<' {
		return p.parseSGRMouse(data)
	}

	maxScan := len(data)
	if maxScan > 2+maxCSIBody {
		maxScan = 2 + maxCSIBody
	}

	end := 2
	final := false
	for end < maxScan {
		c := data[end]
		if c >= 0x40 && c <= 0x7e {
			end++
			final = true
			break
		}
		if c < 0x20 || c > 0x3f {
			// Malformed parameter byte; consume through it so the next
			// read starts clean
			return end + 1, Signal{Kind: SignalUnknown}, false
		}
		end++
	}
	if !final {
		if len(data) > 2+maxCSIBody {
			// Runaway sequence, cut it off
			return maxScan, Signal{Kind: SignalUnknown}, false
		}
		return 0, Signal{}, true
	}

	body := data[2:end]

	// Bracketed paste markers
	switch string(body) {
	case "200~":
		return end, Signal{Kind: SignalPasteBegin}, false
	case "201~":
		return end, Signal{Kind: SignalPasteEnd}, false
	}

	if key, mods, ok := lookupCSI(body); ok {
		return end, Signal{Kind: SignalSpecial, Key: key, Mods: mods}, false
	}

	// Well-formed but unrecognized; fully consumed
	return end, Signal{Kind: SignalUnknown}, false
}

// parseSS3 parses an SS3 sequence (ESC O x)
func (p *parser) parseSS3(data []byte) (int, Signal, bool) {
	if len(data) < 3 {
		return 0, Signal{}, true
	}
	if key, mods, ok := lookupSS3(data[2]); ok {
		return 3, Signal{Kind: SignalSpecial, Key: key, Mods: mods}, false
	}
	return 3, Signal{Kind: SignalUnknown}, false
}

// parseSGRMouse parses mouse SGR sequences (ESC [ < Btn ; X ; Y M/m)
func (p *parser) parseSGRMouse(data []byte) (int, Signal, bool) {
	maxScan := len(data)
	if maxScan > 3+maxSGRParams {
		maxScan = 3 + maxSGRParams
	}

	end := 3
	for end < maxScan {
		c := data[end]
		if c == 'M' || c == 'm' {
			break
		}
		if (c < '0' || c > '9') && c != ';' {
			return end + 1, Signal{Kind: SignalUnknown}, false
		}
		end++
	}
	if end >= maxScan {
		if len(data) > 3+maxSGRParams {
			return maxScan, Signal{Kind: SignalUnknown}, false
		}
		return 0, Signal{}, true
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1, Signal{Kind: SignalUnknown}, false
	}
	release := data[end] == 'm'

	// Bits 0-1: button id, bit 5 (32): motion, bit 6 (64): scroll.
	// Bits 2-4 carry shift/alt/ctrl.
	id := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	var modBits MouseMask
	if btn&4 != 0 {
		modBits |= MaskShift
	}
	if btn&8 != 0 {
		modBits |= MaskAlt
	}
	if btn&16 != 0 {
		modBits |= MaskCtrl
	}

	var buttons MouseMask
	change := true
	switch {
	case isScroll:
		// id 2/3 are sideways scroll, which has no event shape here
		switch id {
		case 0:
			buttons = p.held | MaskWheelUp
		case 1:
			buttons = p.held | MaskWheelDown
		default:
			return end + 1, Signal{Kind: SignalUnknown}, false
		}
	case isMotion:
		buttons = p.held
		change = false
	default:
		var bit MouseMask
		switch id {
		case 0:
			bit = MaskButton1
		case 1:
			bit = MaskButton2
		case 2:
			bit = MaskButton3
		}
		if release {
			if bit == 0 {
				p.held = 0 // release with no button id, clear everything
			} else {
				p.held &^= bit
			}
		} else {
			p.held |= bit
		}
		buttons = p.held
	}

	return end + 1, Signal{
		Kind: SignalMouse,
		Mouse: MouseReport{
			Buttons:      buttons | modBits,
			X:            x - 1, // terminal reports are 1-indexed
			Y:            y - 1,
			ButtonChange: change,
		},
	}, false
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y"
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
