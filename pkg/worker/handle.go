package worker

import (
	"context"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/kvtree/pkg/comm"
)

// Handle is an opaque worker identity plus its duplex stream. The
// session ID is a ksuid — it exists for log correlation only, per
// SPEC_FULL.md §3; no invariant depends on its value or ordering.
type Handle struct {
	ID     ksuid.KSUID
	stream comm.LineStream
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHandle wraps stream in a cancellable worker identity.
func NewHandle(stream comm.LineStream) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handle{
		ID:     ksuid.New(),
		stream: stream,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Cancel requests this worker's termination. It cancels the worker's
// context (unblocking a pause wait or an in-progress file replay between
// lines) and closes its stream (unblocking a blocked receive, per the
// cancellation-safe-read design note in SPEC_FULL.md §9).
func (h *Handle) Cancel() {
	h.cancel()
	h.stream.Close()
}
