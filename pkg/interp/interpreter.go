// Package interp implements the one-line command interpreter that sits
// between a client worker and the store.
package interp

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/ssargent/kvtree/pkg/bst"
)

// maxFieldLen bounds each whitespace-delimited argument, mirroring the
// "%255s" scanner the original implementation used.
const maxFieldLen = 255

// Interpreter parses one line of client input and drives the store.
type Interpreter struct {
	store *bst.Store
}

// New builds an Interpreter backed by store.
func New(store *bst.Store) *Interpreter {
	return &Interpreter{store: store}
}

// Interpret parses one line and returns the response to send back to the
// client. ctx is checked for cancellation between lines of a file replay
// (verb 'f'); it is otherwise unused since no other verb blocks.
func (ip *Interpreter) Interpret(ctx context.Context, line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) == 0 {
		return "ill-formed command"
	}

	verb := trimmed[0]
	rest := trimmed[1:]
	fields := strings.Fields(rest)

	switch verb {
	case 'q':
		if len(fields) < 1 {
			return "ill-formed command"
		}
		return ip.query(capField(fields[0]))

	case 'a':
		if len(fields) < 2 {
			return "ill-formed command"
		}
		return ip.add(capField(fields[0]), capField(fields[1]))

	case 'd':
		if len(fields) < 1 {
			return "ill-formed command"
		}
		return ip.remove(capField(fields[0]))

	case 'f':
		if len(fields) < 1 {
			return "ill-formed command"
		}
		return ip.replay(ctx, capField(fields[0]))

	default:
		return "ill-formed command"
	}
}

func (ip *Interpreter) query(key string) string {
	value, found := ip.store.Query(key)
	if !found {
		return "not found"
	}
	return value
}

func (ip *Interpreter) add(key, value string) string {
	inserted, err := ip.store.Add(key, value)
	if err != nil {
		// Resource exhaustion / oversized field: no partial tree state,
		// surfaced to the client like any other malformed request.
		return "ill-formed command"
	}
	if inserted {
		return "added"
	}
	return "already in database"
}

func (ip *Interpreter) remove(key string) string {
	if ip.store.Remove(key) {
		return "removed"
	}
	return "not in database"
}

// replay opens path and interprets each line in turn, silently, checking
// ctx between lines so a long file can be cancelled mid-replay.
func (ip *Interpreter) replay(ctx context.Context, path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "bad file name"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return "file processed"
		default:
		}
		ip.Interpret(ctx, scanner.Text())
	}

	return "file processed"
}

func capField(s string) string {
	if len(s) > maxFieldLen {
		return s[:maxFieldLen]
	}
	return s
}
