package terminput

import "strconv"

// seqEntry is a resolved escape sequence
type seqEntry struct {
	key  Key
	mods Modifiers
}

// csiBase maps unmodified CSI bodies (everything after ESC [, including
// the final byte) to keys. Modified variants like "1;5A" and "3;2~" are
// derived in lookupCSI rather than tabulated.
var csiBase = map[string]seqEntry{
	// Arrows and simple navigation
	"A": {KeyUp, ModNone},
	"B": {KeyDown, ModNone},
	"C": {KeyRight, ModNone},
	"D": {KeyLeft, ModNone},
	"H": {KeyHome, ModNone},
	"F": {KeyEnd, ModNone},
	"Z": {KeyBacktab, ModShift}, // Shift+Tab

	// Navigation, tilde form
	"1~": {KeyHome, ModNone},
	"2~": {KeyInsert, ModNone},
	"3~": {KeyDelete, ModNone},
	"4~": {KeyEnd, ModNone},
	"5~": {KeyPageUp, ModNone},
	"6~": {KeyPageDown, ModNone},
	"7~": {KeyHome, ModNone},
	"8~": {KeyEnd, ModNone},

	// Function keys (xterm)
	"11~": {KeyF1, ModNone},
	"12~": {KeyF2, ModNone},
	"13~": {KeyF3, ModNone},
	"14~": {KeyF4, ModNone},
	"15~": {KeyF5, ModNone},
	"17~": {KeyF6, ModNone},
	"18~": {KeyF7, ModNone},
	"19~": {KeyF8, ModNone},
	"20~": {KeyF9, ModNone},
	"21~": {KeyF10, ModNone},
	"23~": {KeyF11, ModNone},
	"24~": {KeyF12, ModNone},
}

// csiLetterKeys maps final letters of "1;<mod><letter>" xterm sequences
var csiLetterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// ss3Keys maps SS3 bodies (ESC O <letter>)
var ss3Keys = map[byte]seqEntry{
	'A': {KeyUp, ModNone},
	'B': {KeyDown, ModNone},
	'C': {KeyRight, ModNone},
	'D': {KeyLeft, ModNone},
	'H': {KeyHome, ModNone},
	'F': {KeyEnd, ModNone},
	'P': {KeyF1, ModNone},
	'Q': {KeyF2, ModNone},
	'R': {KeyF3, ModNone},
	'S': {KeyF4, ModNone},
}

// modsFromParam decodes the xterm modifier parameter: 1 + bitmap of
// shift(1), alt(2), ctrl(4)
func modsFromParam(code int) (Modifiers, bool) {
	if code < 2 || code > 8 {
		return ModNone, false
	}
	bits := code - 1
	var m Modifiers
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m, true
}

// lookupCSI resolves a CSI body to a key. The string([]byte) conversion
// inline in map access does not allocate.
func lookupCSI(seq []byte) (Key, Modifiers, bool) {
	if e, ok := csiBase[string(seq)]; ok {
		return e.key, e.mods, true
	}

	// Modified forms: "<base>;<mod>~" or "1;<mod><letter>"
	n := len(seq)
	if n < 4 {
		return KeyNone, ModNone, false
	}
	final := seq[n-1]
	params := seq[:n-1]

	semi := -1
	for i, b := range params {
		if b == ';' {
			semi = i
			break
		}
	}
	if semi <= 0 || semi == len(params)-1 {
		return KeyNone, ModNone, false
	}

	first, err1 := strconv.Atoi(string(params[:semi]))
	modCode, err2 := strconv.Atoi(string(params[semi+1:]))
	if err1 != nil || err2 != nil {
		return KeyNone, ModNone, false
	}
	mods, ok := modsFromParam(modCode)
	if !ok {
		return KeyNone, ModNone, false
	}

	if final == '~' {
		e, ok := csiBase[strconv.Itoa(first)+"~"]
		if !ok {
			return KeyNone, ModNone, false
		}
		return e.key, e.mods | mods, true
	}

	if first != 1 {
		return KeyNone, ModNone, false
	}
	key, ok := csiLetterKeys[final]
	if !ok {
		return KeyNone, ModNone, false
	}
	return key, mods, true
}

// lookupSS3 resolves an SS3 final byte to a key
func lookupSS3(b byte) (Key, Modifiers, bool) {
	if e, ok := ss3Keys[b]; ok {
		return e.key, e.mods, true
	}
	return KeyNone, ModNone, false
}
