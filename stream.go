package terminput

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStreamActive is returned by Open when another InputStream already
// owns the process's input.
var ErrStreamActive = errors.New("terminput: an input stream is already active")

// streamActive is the process-wide exclusivity token. A second reader
// would interleave bytes mid-sequence and desynchronize decoding, so at
// most one stream can exist at a time.
var streamActive atomic.Bool

// InputStream owns a driver and decoder for the duration of input
// handling. Construction claims exclusive input ownership for the
// process; Close releases it.
type InputStream struct {
	drv Driver
	dec *Decoder

	mu     sync.Mutex
	closed bool
}

// Open claims process input exclusivity and wraps drv in a stream.
// Fails with ErrStreamActive if another stream is open.
func Open(drv Driver, opts ...DecoderOptions) (*InputStream, error) {
	if !streamActive.CompareAndSwap(false, true) {
		return nil, ErrStreamActive
	}
	return &InputStream{
		drv: drv,
		dec: NewDecoder(drv, opts...),
	}, nil
}

// NextEvent blocks the calling thread until one event is available or a
// decode error occurs. See Decoder.Next for the error contract.
func (s *InputStream) NextEvent() (Event, error) {
	return s.dec.Next()
}

// SetEscapeDelay configures the escape-sequence disambiguation delay.
// Affects only future decoding, not signals already queued.
func (s *InputStream) SetEscapeDelay(d time.Duration) {
	s.drv.SetEscapeDelay(d)
}

// Close releases the exclusivity token and closes the driver, restoring
// terminal modes. Safe to call multiple times.
func (s *InputStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.drv.Close()
	streamActive.Store(false)
	return err
}
