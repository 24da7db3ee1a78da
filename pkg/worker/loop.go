package worker

import (
	"strings"
	"time"

	"github.com/ssargent/kvtree/pkg/interp"
)

// Lifecycle is the subset of the server supervisor a worker's command
// loop needs in order to deregister itself on exit. Accepting this as an
// interface (rather than importing pkg/supervisor directly) is the
// "inject the controller and registry as dependencies of the worker
// factory" design note: pkg/worker never reaches for a supervisor
// singleton.
type Lifecycle interface {
	Release(*Handle)
}

// CommandRecorder observes one interpreted command, for the diagnostics
// endpoint's kvtree_commands_total/kvtree_command_duration_seconds
// metrics (*api.Metrics satisfies this structurally; pkg/worker never
// imports pkg/api).
type CommandRecorder interface {
	RecordCommand(verb string, success bool, duration time.Duration)
}

var failureResponses = map[string]bool{
	"ill-formed command": true,
	"not found":          true,
	"not in database":    true,
	"bad file name":      true,
}

// Run is a worker's command loop body (spec.md §4.F): check the pause
// barrier, block for one line, interpret it, reply, repeat until the
// stream errors or the worker is cancelled. life.Release is installed as
// the exit action before the loop is entered, so it runs exactly once on
// every exit path — stream error, EOF, or cancellation. recorder may be
// nil, in which case no metrics are recorded.
func Run(h *Handle, life Lifecycle, barrier *PauseBarrier, interpreter *interp.Interpreter, recorder CommandRecorder) {
	defer life.Release(h)
	defer h.stream.Close()

	for {
		if err := barrier.Wait(h.ctx); err != nil {
			return
		}

		line, err := h.stream.ReceiveLine()
		if err != nil {
			return
		}

		start := time.Now()
		response := interpreter.Interpret(h.ctx, line)
		if recorder != nil {
			recorder.RecordCommand(verbOf(line), !failureResponses[response], time.Since(start))
		}

		if err := h.stream.SendLine(response); err != nil {
			return
		}
	}
}

// verbOf extracts the single-character command verb for metrics
// labeling, falling back to "?" for a blank or whitespace-only line.
func verbOf(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) == 0 {
		return "?"
	}
	return string(trimmed[0])
}
