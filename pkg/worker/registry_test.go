package worker

import (
	"testing"

	"github.com/ssargent/kvtree/pkg/comm"
)

func newTestHandle() (*Handle, comm.LineStream) {
	client, server := comm.NewPipe()
	return NewHandle(server), client
}

func TestRegistry_AdmitRespectsFlag(t *testing.T) {
	r := NewRegistry()
	h, client := newTestHandle()
	defer client.Close()

	if ok := r.Admit(h, func() bool { return false }); ok {
		t.Fatalf("expected Admit to refuse when admitting() is false")
	}
	if r.Count() != 0 {
		t.Fatalf("expected count 0 after refused admit, got %d", r.Count())
	}

	if ok := r.Admit(h, func() bool { return true }); !ok {
		t.Fatalf("expected Admit to succeed when admitting() is true")
	}
	if r.Count() != 1 {
		t.Fatalf("expected count 1 after admit, got %d", r.Count())
	}
}

func TestRegistry_RemoveIsSafeForUnknownHandle(t *testing.T) {
	r := NewRegistry()
	h, client := newTestHandle()
	defer client.Close()

	r.Remove(h)
	if r.Count() != 0 {
		t.Fatalf("expected count 0, got %d", r.Count())
	}
}

func TestRegistry_CancelAllCancelsEveryMember(t *testing.T) {
	r := NewRegistry()

	const n = 5
	handles := make([]*Handle, n)
	clients := make([]comm.LineStream, n)
	for i := 0; i < n; i++ {
		h, client := newTestHandle()
		handles[i] = h
		clients[i] = client
		if !r.Admit(h, func() bool { return true }) {
			t.Fatalf("expected admit %d to succeed", i)
		}
	}
	defer func() {
		for _, c := range clients {
			c.Close()
		}
	}()

	r.CancelAll()

	for i, h := range handles {
		select {
		case <-h.ctx.Done():
		default:
			t.Fatalf("handle %d was not cancelled", i)
		}
	}
}

func TestRegistry_AdmitThenRemoveThenCount(t *testing.T) {
	r := NewRegistry()
	h, client := newTestHandle()
	defer client.Close()

	r.Admit(h, func() bool { return true })
	r.Remove(h)

	if r.Count() != 0 {
		t.Fatalf("expected count 0 after remove, got %d", r.Count())
	}
}

func TestRegistry_LockUnlockSequencesWithAdmit(t *testing.T) {
	r := NewRegistry()
	admitting := true

	r.Lock()
	admitting = false
	r.Unlock()

	h, client := newTestHandle()
	defer client.Close()

	if ok := r.Admit(h, func() bool { return admitting }); ok {
		t.Fatalf("expected admit to observe the flag flipped under the shared lock")
	}
}
