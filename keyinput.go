package terminput

import "fmt"

// KeyInput is the payload of a key event: exactly one of a decoded
// Unicode codepoint, a raw undecodable byte, or a driver special-key
// code. The set is closed; consumers type-switch over the three
// implementations.
type KeyInput interface {
	keyInput()
	fmt.Stringer
}

// Codepoint is a decoded Unicode scalar value, printable or control.
type Codepoint rune

// RawByte is a byte that could not be decoded as part of valid UTF-8.
// It is preserved for applications that want raw passthrough.
type RawByte byte

// SpecialKey is a non-printable key reported by the driver as a
// numeric code.
type SpecialKey Key

func (Codepoint) keyInput()  {}
func (RawByte) keyInput()    {}
func (SpecialKey) keyInput() {}

func (c Codepoint) String() string {
	return fmt.Sprintf("%q", rune(c))
}

func (b RawByte) String() string {
	return fmt.Sprintf("0x%02x", byte(b))
}

func (k SpecialKey) String() string {
	return Key(k).String()
}
