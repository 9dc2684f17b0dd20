//go:build unix

package terminput

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal mode control sequences
var (
	pasteOn  = []byte("\x1b[?2004h")
	pasteOff = []byte("\x1b[?2004l")
	// Button-event tracking + SGR encoding
	mouseOn  = []byte("\x1b[?1002h\x1b[?1006h")
	mouseOff = []byte("\x1b[?1006l\x1b[?1002l")
)

const (
	// DefaultEscapeDelay is the initial escape-sequence disambiguation
	// delay. Short enough that a standalone Escape feels immediate,
	// long enough for slow multi-byte special-key sequences.
	DefaultEscapeDelay = 50 * time.Millisecond

	// MaxEscapeDelay is the upper clamp for SetEscapeDelay.
	MaxEscapeDelay = 10 * time.Second

	// Baseline poll timeout in ms, keeps resize delivery responsive
	pollInterval = 100
)

// UnixDriver reads raw bytes from a terminal and parses them into
// Signals. It puts the input into raw mode, enables bracketed paste and
// SGR mouse reporting, and reports SIGWINCH as resize signals. Emits
// direct ANSI sequences, no terminfo; target environments are Linux,
// macOS and the BSDs with xterm-compatible terminals.
type UnixDriver struct {
	in      *os.File
	out     *os.File
	inFd    int
	oldTerm *term.State

	escDelayMs atomic.Int32

	p     parser
	buf   []byte
	queue []Signal

	sigCh  chan os.Signal
	closed bool
}

// NewUnixDriver puts in into raw mode and takes over its input until
// Close. The caller keeps ownership of the files themselves.
func NewUnixDriver(in, out *os.File) (*UnixDriver, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("terminput: input is not a terminal")
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("terminput: raw mode: %w", err)
	}

	d := &UnixDriver{
		in:      in,
		out:     out,
		inFd:    fd,
		oldTerm: old,
		buf:     make([]byte, 0, 256),
		sigCh:   make(chan os.Signal, 1),
	}
	d.escDelayMs.Store(int32(DefaultEscapeDelay / time.Millisecond))

	d.out.Write(pasteOn)
	d.out.Write(mouseOn)
	signal.Notify(d.sigCh, syscall.SIGWINCH)

	// Initial size so applications can lay out before the first SIGWINCH
	w, h := d.size()
	d.queue = append(d.queue, Signal{Kind: SignalResize, Width: w, Height: h})

	return d, nil
}

// SetEscapeDelay clamps out-of-range values rather than failing.
func (d *UnixDriver) SetEscapeDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	if delay > MaxEscapeDelay {
		delay = MaxEscapeDelay
	}
	d.escDelayMs.Store(int32(delay / time.Millisecond))
}

// ReadSignal blocks until one signal is available. A lone ESC byte is
// held until the escape delay expires, then resolved into a standalone
// Escape keypress.
func (d *UnixDriver) ReadSignal() (Signal, error) {
	for {
		if len(d.queue) > 0 {
			sig := d.queue[0]
			d.queue = d.queue[1:]
			if sig.Kind == SignalUnknown {
				return sig, ErrUnknownSequence
			}
			return sig, nil
		}

		select {
		case <-d.sigCh:
			w, h := d.size()
			return Signal{Kind: SignalResize, Width: w, Height: h}, nil
		default:
		}

		timeout := pollInterval
		pendingEsc := len(d.buf) == 1 && d.buf[0] == 0x1b
		if pendingEsc {
			timeout = int(d.escDelayMs.Load())
		}

		fds := []unix.PollFd{{Fd: int32(d.inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, timeout)
		if err != nil {
			if err == unix.EINTR {
				// SIGWINCH lands here; the loop re-checks sigCh
				continue
			}
			return Signal{}, fmt.Errorf("terminput: poll: %w", err)
		}
		if n == 0 {
			if pendingEsc {
				// Escape delay expired: standalone Escape keypress
				d.buf = d.buf[:0]
				return Signal{Kind: SignalSpecial, Key: KeyEscape}, nil
			}
			continue
		}

		var chunk [256]byte
		rn, err := unix.Read(d.inFd, chunk[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return Signal{}, fmt.Errorf("terminput: read: %w", err)
		}
		if rn == 0 {
			return Signal{}, io.EOF
		}

		// Append to the persistent buffer so partial UTF-8 and escape
		// sequences survive read boundaries, then parse what we can
		d.buf = append(d.buf, chunk[:rn]...)
		consumed, sigs := d.p.parse(d.buf)
		if consumed > 0 {
			if consumed >= len(d.buf) {
				d.buf = d.buf[:0]
			} else {
				copy(d.buf, d.buf[consumed:])
				d.buf = d.buf[:len(d.buf)-consumed]
			}
		}
		d.queue = append(d.queue, sigs...)
	}
}

// Close disables paste/mouse reporting and restores the terminal mode.
// Safe to call multiple times.
func (d *UnixDriver) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	signal.Stop(d.sigCh)
	d.out.Write(mouseOff)
	d.out.Write(pasteOff)
	if d.oldTerm == nil {
		return nil
	}
	if err := term.Restore(d.inFd, d.oldTerm); err != nil {
		return fmt.Errorf("terminput: restore: %w", err)
	}
	return nil
}

func (d *UnixDriver) size() (int, int) {
	ws, err := unix.IoctlGetWinsize(d.inFd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

// OpenStdin opens an input stream over a raw-mode driver bound to the
// process's standard input and output.
func OpenStdin(opts ...DecoderOptions) (*InputStream, error) {
	drv, err := NewUnixDriver(os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}
	s, err := Open(drv, opts...)
	if err != nil {
		drv.Close()
		return nil, err
	}
	return s, nil
}
