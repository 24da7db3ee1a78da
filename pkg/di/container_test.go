package di

import (
	"testing"
	"time"

	"github.com/ssargent/kvtree/pkg/comm"
)

func TestContainer_WorkerFactoryHandlesOneExchange(t *testing.T) {
	c := NewContainer()

	client, server := comm.NewPipe()
	go c.WorkerFactory()(server)

	if err := client.SendLine("a apple red"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	line, err := client.ReceiveLine()
	if err != nil || line != "added" {
		t.Fatalf("expected added, got %q err %v", line, err)
	}

	client.Close()
	time.Sleep(10 * time.Millisecond)

	if c.Registry.Count() != 0 {
		t.Fatalf("expected worker to deregister after disconnect, got count %d", c.Registry.Count())
	}
}

func TestContainer_WorkerFactoryRefusesAfterShutdown(t *testing.T) {
	c := NewContainer()
	c.Supervisor.Shutdown()

	client, server := comm.NewPipe()
	defer client.Close()

	go c.WorkerFactory()(server)

	_, err := client.ReceiveLine()
	if err == nil {
		t.Fatalf("expected stream to be closed for a refused worker")
	}
}
