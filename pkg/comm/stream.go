// Package comm is the "comm" layer spec.md treats as an external
// collaborator: the TCP accept loop and the per-connection
// line-buffered duplex stream. The core (pkg/bst, pkg/interp,
// pkg/worker, pkg/supervisor) depends on nothing from this package
// except the LineStream interface.
package comm

// MaxLineLen bounds a single request or response line, per spec.md §6.
const MaxLineLen = 1023

// LineStream is an abstract line-oriented duplex connection to one
// client. ReceiveLine blocks until a full line is available, the peer
// disconnects, or the stream is closed out from under it — the latter is
// how a blocked receive is made cancellation-safe (see Close).
type LineStream interface {
	// ReceiveLine blocks for the next line, without its trailing
	// newline. It returns an error (commonly io.EOF) when the
	// connection is closed by either side.
	ReceiveLine() (string, error)

	// SendLine writes line followed by a newline.
	SendLine(line string) error

	// Close tears down the underlying connection. Closing a stream that
	// is blocked in ReceiveLine unblocks it with an error, which is the
	// mechanism the supervisor uses to cancel a worker that has no other
	// way to notice cancellation (spec.md's design notes).
	Close() error
}
