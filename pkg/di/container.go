// Package di wires the server's concrete dependencies together in one
// place, per SPEC_FULL.md §9's design note: every component that needs
// the store, the registry, or the supervisor receives it as an explicit
// constructor argument assembled here — nothing reaches for a
// package-level singleton.
package di

import (
	"github.com/ssargent/kvtree/pkg/api"
	"github.com/ssargent/kvtree/pkg/bst"
	"github.com/ssargent/kvtree/pkg/comm"
	"github.com/ssargent/kvtree/pkg/interp"
	"github.com/ssargent/kvtree/pkg/supervisor"
	"github.com/ssargent/kvtree/pkg/worker"
)

// Container holds the server's shared, process-lifetime dependencies.
type Container struct {
	Store       *bst.Store
	Barrier     *worker.PauseBarrier
	Registry    *worker.Registry
	Interpreter *interp.Interpreter
	Supervisor  *supervisor.Supervisor
	Metrics     *api.Metrics
}

// NewContainer builds a fresh set of dependencies for one server
// process: one tree, one pause barrier, one worker registry, one
// interpreter bound to that tree, and the supervisor wiring all of them
// together. Metrics is the single instance shared between the worker
// command loop and the diagnostics endpoint (pkg/api.StartServer), so
// /metrics always reports what the hot path actually recorded.
func NewContainer() *Container {
	store := bst.NewStore()
	registry := worker.NewRegistry()
	barrier := worker.NewPauseBarrier()
	sup := supervisor.New(store, registry, barrier)

	return &Container{
		Store:       store,
		Barrier:     barrier,
		Registry:    registry,
		Interpreter: interp.New(store),
		Supervisor:  sup,
		Metrics:     api.NewMetrics(),
	}
}

// WorkerFactory returns the comm.WorkerFactory to hand to
// comm.ListenAndServe: for every accepted connection, admit a worker
// through the supervisor and run its command loop to completion.
func (c *Container) WorkerFactory() comm.WorkerFactory {
	return func(stream comm.LineStream) {
		c.Metrics.RecordConnectionAccepted()

		h, ok := c.Supervisor.Admit(stream)
		if !ok {
			stream.Close()
			return
		}
		c.Metrics.SetWorkersActive(c.Supervisor.WorkerCount())
		defer c.Metrics.SetWorkersActive(c.Supervisor.WorkerCount())

		worker.Run(h, c.Supervisor, c.Barrier, c.Interpreter, c.Metrics)
	}
}
