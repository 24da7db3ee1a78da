package supervisor

import (
	"sync"
	"testing"
	"time"

	"github.com/ssargent/kvtree/pkg/bst"
	"github.com/ssargent/kvtree/pkg/comm"
	"github.com/ssargent/kvtree/pkg/interp"
	"github.com/ssargent/kvtree/pkg/worker"
)

func newTestSupervisor() *Supervisor {
	store := bst.NewStore()
	registry := worker.NewRegistry()
	barrier := worker.NewPauseBarrier()
	return New(store, registry, barrier)
}

func TestSupervisor_AdmitRefusesAfterShutdown(t *testing.T) {
	sup := newTestSupervisor()
	sup.Shutdown()

	_, server := comm.NewPipe()
	h, ok := sup.Admit(server)
	if ok || h != nil {
		t.Fatalf("expected Admit to refuse after Shutdown")
	}
}

func TestSupervisor_DrainsInBoundedTime(t *testing.T) {
	sup := newTestSupervisor()
	interpreter := interp.New(sup.Store())

	const workers = 6
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		client, server := comm.NewPipe()
		h, ok := sup.Admit(server)
		if !ok {
			t.Fatalf("expected admit to succeed")
		}
		wg.Add(1)
		go func(client comm.LineStream) {
			defer wg.Done()
			defer client.Close()
			worker.Run(h, sup, sup.Barrier(), interpreter, nil)
		}(client)
	}

	if sup.WorkerCount() != workers {
		t.Fatalf("expected %d live workers, got %d", workers, sup.WorkerCount())
	}

	done := make(chan struct{})
	go func() {
		sup.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("shutdown did not drain in bounded time")
	}

	wg.Wait()

	if sup.WorkerCount() != 0 {
		t.Fatalf("expected 0 workers after drain, got %d", sup.WorkerCount())
	}

	select {
	case <-sup.Done():
	default:
		t.Fatalf("expected Done() to be closed after shutdown")
	}
}

func TestSupervisor_ShutdownIsIdempotent(t *testing.T) {
	sup := newTestSupervisor()

	done := make(chan struct{})
	go func() {
		sup.Shutdown()
		sup.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected repeated Shutdown calls to return promptly")
	}
}

func TestSupervisor_NoWorkerObservesDestroyedStore(t *testing.T) {
	sup := newTestSupervisor()
	interpreter := interp.New(sup.Store())

	client, server := comm.NewPipe()
	h, ok := sup.Admit(server)
	if !ok {
		t.Fatalf("expected admit to succeed")
	}

	go worker.Run(h, sup, sup.Barrier(), interpreter, nil)

	if err := client.SendLine("a k v"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if line, err := client.ReceiveLine(); err != nil || line != "added" {
		t.Fatalf("expected added, got %q err %v", line, err)
	}

	client.Close()
	sup.Shutdown()

	if sup.WorkerCount() != 0 {
		t.Fatalf("expected drained registry, got %d", sup.WorkerCount())
	}
}
