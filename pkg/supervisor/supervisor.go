// Package supervisor implements the server-wide admission and shutdown
// control described in SPEC_FULL.md §4.E: an admission flag, the worker
// registry, a worker-count drain condition, and the signal-handling task
// that turns an external shutdown request into delete_all-equivalent
// cleanup without terminating the process.
package supervisor

import (
	"log"

	"github.com/ssargent/kvtree/pkg/bst"
	"github.com/ssargent/kvtree/pkg/comm"
	"github.com/ssargent/kvtree/pkg/worker"

	"sync"
)

// Supervisor owns the pieces of server-wide state that outlive any single
// worker: whether new connections may still be admitted, the registry of
// live workers, the count used to detect a fully-drained shutdown, and the
// store those workers share.
type Supervisor struct {
	registry *worker.Registry
	barrier  *worker.PauseBarrier
	store    *bst.Store

	// admitting is read and written only while registry's mutex is held,
	// so Admit's registry.Admit call and Shutdown's flip can never race
	// (spec.md §4.E worker-registration/shutdown-sequence note).
	admitting bool

	countMu   sync.Mutex
	countCond *sync.Cond
	count     int

	shutdownOnce sync.Once
	done         chan struct{}
}

// New returns a Supervisor ready to admit workers against store.
func New(store *bst.Store, registry *worker.Registry, barrier *worker.PauseBarrier) *Supervisor {
	s := &Supervisor{
		registry:  registry,
		barrier:   barrier,
		store:     store,
		admitting: true,
		done:      make(chan struct{}),
	}
	s.countCond = sync.NewCond(&s.countMu)
	return s
}

// Admit registers a new worker for stream, unless the supervisor has
// already stopped admitting. It performs the "uninterruptible prelude" of
// spec.md §9: registration and the count increment happen before the
// worker is handed back to the caller, so a cancellation can never race a
// still-in-progress admission.
func (s *Supervisor) Admit(stream comm.LineStream) (*worker.Handle, bool) {
	h := worker.NewHandle(stream)

	ok := s.registry.Admit(h, func() bool { return s.admitting })
	if !ok {
		h.Cancel()
		return nil, false
	}

	s.countMu.Lock()
	s.count++
	s.countMu.Unlock()

	return h, true
}

// Release implements worker.Lifecycle: it is installed as the exit action
// of every worker's command loop (pkg/worker.Run's deferred life.Release),
// removing the worker from the registry and decrementing the drain count,
// waking Shutdown if this was the last worker.
func (s *Supervisor) Release(h *worker.Handle) {
	s.registry.Remove(h)

	s.countMu.Lock()
	s.count--
	if s.count == 0 {
		s.countCond.Broadcast()
	}
	s.countMu.Unlock()
}

// Barrier returns the pause barrier shared by every worker spawned through
// this supervisor, for callers implementing the console "s"/"g" operator
// commands (SPEC_FULL.md §4.K).
func (s *Supervisor) Barrier() *worker.PauseBarrier { return s.barrier }

// Store returns the shared tree, for read-only diagnostics endpoints.
func (s *Supervisor) Store() *bst.Store { return s.store }

// WorkerCount reports the current number of live workers.
func (s *Supervisor) WorkerCount() int {
	s.countMu.Lock()
	defer s.countMu.Unlock()
	return s.count
}

// Admitting reports whether the supervisor is still accepting new
// workers, read under the same registry mutex Admit/Shutdown use, for
// diagnostics (pkg/api) only.
func (s *Supervisor) Admitting() bool {
	s.registry.Lock()
	defer s.registry.Unlock()
	return s.admitting
}

// Paused reports whether the shared pause barrier is currently holding
// workers back, for diagnostics (pkg/api) only.
func (s *Supervisor) Paused() bool {
	return s.barrier.Stopped()
}

// Shutdown is the delete_all equivalent of spec.md §4.E: stop admitting,
// cancel every live worker, wait for the worker count to drain to zero,
// then clean up the shared store. Safe to call more than once; only the
// first call does the work.
func (s *Supervisor) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.registry.Lock()
		s.admitting = false
		s.registry.Unlock()

		s.registry.CancelAll()

		s.countMu.Lock()
		for s.count > 0 {
			s.countCond.Wait()
		}
		s.countMu.Unlock()

		s.store.Cleanup()

		log.Printf("supervisor: shutdown complete, store cleaned up")
		close(s.done)
	})
}

// Done returns a channel closed once Shutdown has finished draining and
// cleaning up the store.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}
