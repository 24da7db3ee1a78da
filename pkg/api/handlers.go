package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// StoreInspector is the read-only subset of the tree a diagnostics
// handler needs. It deliberately has no Add/Remove — the diagnostics
// surface can never mutate the store.
type StoreInspector interface {
	Print(w io.Writer)
	Stats() (keys int, height int)
}

// WorkerCounter reports the live worker count plus the admission and
// pause state diagnostics need, satisfied by *supervisor.Supervisor.
type WorkerCounter interface {
	WorkerCount() int
	Admitting() bool
	Paused() bool
}

// Server holds the diagnostics API's dependencies. It never imports
// pkg/worker.Run or pkg/interp.Interpret — it can only observe state,
// never drive a command through it.
type Server struct {
	store   StoreInspector
	workers WorkerCounter
	metrics *Metrics
}

// NewServer builds a diagnostics Server over store and workers.
func NewServer(store StoreInspector, workers WorkerCounter, metrics *Metrics) *Server {
	return &Server{store: store, workers: workers, metrics: metrics}
}

// handleHealth reports liveness: the process is up and able to answer.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleExplain dumps the tree's current shape (the same indented
// in-order walk the console "p" command writes) alongside the live
// worker count, key count, tree height, and admission/pause state, for
// operators inspecting server state without touching the wire protocol.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	s.store.Print(&buf)
	keys, height := s.store.Stats()

	s.metrics.SetWorkersActive(s.workers.WorkerCount())

	sendSuccess(w, map[string]interface{}{
		"workers_active": s.workers.WorkerCount(),
		"key_count":      keys,
		"tree_height":    height,
		"admitting":      s.workers.Admitting(),
		"paused":         s.workers.Paused(),
		"tree_dump":      buf.String(),
	})
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}
