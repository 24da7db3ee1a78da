package worker

import (
	"sync"

	"github.com/segmentio/ksuid"
)

// Registry is the unordered collection of live workers, guarded by a
// single mutex (spec.md §3's WorkerRegistry).
type Registry struct {
	mu      sync.Mutex
	members map[ksuid.KSUID]*Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{members: make(map[ksuid.KSUID]*Handle)}
}

// Admit registers h if admitting() reports true, evaluated while holding
// the registry's own mutex. That is the single sequencing point spec.md
// §4.E calls for: a caller that flips its admission flag to false under
// this same mutex (see Lock/Unlock below) can never race a registration
// that reads the flag as still true.
func (r *Registry) Admit(h *Handle, admitting func() bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !admitting() {
		return false
	}
	r.members[h.ID] = h
	return true
}

// Remove deregisters h. Safe to call even if h was never admitted.
func (r *Registry) Remove(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, h.ID)
}

// CancelAll requests cancellation of every currently registered worker.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.members {
		h.Cancel()
	}
}

// Count returns the number of live workers.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Lock and Unlock expose the registry's mutex so the supervisor can flip
// its admission flag under the same lock Admit uses, without the
// registry needing to know anything about admission itself.
func (r *Registry) Lock()   { r.mu.Lock() }
func (r *Registry) Unlock() { r.mu.Unlock() }
