package worker

import (
	"context"
	"sync"
)

// PauseBarrier is the process-wide pause/resume barrier every worker's
// command loop checks at the top of each iteration. It is realized as a
// channel that is closed while workers may proceed and replaced with a
// fresh, never-closed channel while stopped: closing a channel wakes
// every blocked receiver at once, which is the idiomatic Go analogue of
// a condition variable's broadcast.
//
// Wait additionally takes a context so a worker blocked in a pause can
// still be cancelled — the cancellation check does not wait for
// Release.
type PauseBarrier struct {
	mu      sync.Mutex
	stopped bool
	gate    chan struct{}
}

// NewPauseBarrier returns a barrier that starts in the running state.
func NewPauseBarrier() *PauseBarrier {
	gate := make(chan struct{})
	close(gate)
	return &PauseBarrier{gate: gate}
}

// Stop puts the barrier into the stopped state. Idempotent.
func (b *PauseBarrier) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.stopped = true
	b.gate = make(chan struct{})
}

// Release puts the barrier into the running state, waking every caller
// currently blocked in Wait. Idempotent.
func (b *PauseBarrier) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.stopped {
		return
	}
	b.stopped = false
	close(b.gate)
}

// Wait blocks until the barrier is released or ctx is cancelled,
// whichever happens first.
func (b *PauseBarrier) Wait(ctx context.Context) error {
	b.mu.Lock()
	gate := b.gate
	b.mu.Unlock()

	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stopped reports whether the barrier is currently holding workers back.
// It exists for diagnostics (pkg/api) only; no tree or registry
// invariant depends on it.
func (b *PauseBarrier) Stopped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopped
}
