package terminput

// keyToName maps Key constants to canonical string names
var keyToName = map[Key]string{
	KeyEscape:  "escape",
	KeyBacktab: "backtab",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",
	KeyDelete:   "delete",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	nameToKey = make(map[string]Key, len(keyToName))
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["shift_tab"] = KeyBacktab
	nameToKey["esc"] = KeyEscape
}

// String returns the canonical name for a Key constant, or "none"
// for KeyNone and unknown codes.
func (k Key) String() string {
	if n, ok := keyToName[k]; ok {
		return n
	}
	return "none"
}

// KeyByName resolves a canonical name to a Key constant.
// Returns KeyNone and false if name is unknown.
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}
