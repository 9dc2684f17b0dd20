// Package terminput decodes raw terminal input into a structured event
// stream: key presses and releases, mouse actions, bracketed-paste markers,
// and resize notifications.
//
// Features:
//   - Control-character to Ctrl+letter decoding, suppressed inside pastes
//   - Bracketed paste begin/end markers (never nested)
//   - SGR mouse reports with modifier extraction on button changes
//   - Invalid UTF-8 surfaced as raw bytes without corrupting later input
//   - Configurable escape-sequence disambiguation delay
//   - Best-effort key auto-repeat detection
//
// The package separates the terminal driver, which turns terminal bytes
// into partially decoded Signals, from the Decoder, which applies the
// heuristics above and emits Events. Two drivers ship with the package:
// a raw-mode Unix driver emitting direct ANSI sequences, and an adapter
// over a tcell.Screen. InputStream ties a driver and decoder together and
// enforces the one-reader-per-process rule that keeps multi-byte decoding
// coherent.
package terminput
