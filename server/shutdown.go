package server

import (
	"sync"

	"github.com/teranos/fmtls/errors"
)

// ShutdownFlag is the process-wide shutdown cell: created once at startup,
// handed to both the protocol handler and the transport driver. It starts
// false and is meaningfully written once, by a shutdown request.
//
// Setting is always a non-blocking attempt. Nothing on the request path may
// wait on shared state, so contention surfaces as an error for the client
// to retry rather than stalling the event loop.
type ShutdownFlag struct {
	mu    sync.RWMutex
	value bool
}

// NewShutdownFlag returns a flag in the initial (abnormal-exit) state.
func NewShutdownFlag() *ShutdownFlag {
	return &ShutdownFlag{}
}

// TrySet marks the flag without blocking. Returns ErrShutdownContention if
// the lock is held.
func (f *ShutdownFlag) TrySet() error {
	if !f.mu.TryLock() {
		return errors.Wrap(errors.ErrShutdownContention, "failed to lock shutdown flag for writing")
	}
	defer f.mu.Unlock()

	f.value = true
	return nil
}

// Value reports whether shutdown was requested. The driver reads this
// exactly once, after the event loop ends, to select the exit signal.
func (f *ShutdownFlag) Value() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.value
}
