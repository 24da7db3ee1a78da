package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ssargent/kvtree/pkg/di"
)

func TestRunConsole_PrintsTreeOnP(t *testing.T) {
	container := di.NewContainer()
	container.Store.Add("m", "1")

	in := strings.NewReader("p\n")
	var out, errOut bytes.Buffer

	runConsole(in, &out, &errOut, container)

	if !strings.Contains(out.String(), "(root)") {
		t.Fatalf("expected tree dump to contain (root), got %q", out.String())
	}
}

func TestRunConsole_PauseAndResume(t *testing.T) {
	container := di.NewContainer()

	in := strings.NewReader("s\ng\n")
	var out, errOut bytes.Buffer

	runConsole(in, &out, &errOut, container)

	if container.Barrier.Stopped() {
		t.Fatalf("expected barrier to be released after g")
	}
}

func TestRunConsole_InvalidCommand(t *testing.T) {
	container := di.NewContainer()

	in := strings.NewReader("bogus\n")
	var out, errOut bytes.Buffer

	runConsole(in, &out, &errOut, container)

	if !strings.Contains(errOut.String(), "Invalid Command!") {
		t.Fatalf("expected Invalid Command! on stderr, got %q", errOut.String())
	}
}
