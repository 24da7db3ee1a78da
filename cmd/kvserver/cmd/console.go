package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ssargent/kvtree/pkg/di"
)

// runConsole implements the operator console protocol from spec.md §6:
// whitespace-tokenized lines on stdin, "s"/"g"/"p"/"p <path>", EOF
// begins shutdown, anything else prints "Invalid Command!" to stderr.
// It returns once stdin reaches EOF.
func runConsole(in io.Reader, out, errOut io.Writer, container *di.Container) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Fprintln(errOut, "Invalid Command!")
			continue
		}

		switch fields[0] {
		case "s":
			container.Barrier.Stop()
		case "g":
			container.Barrier.Release()
		case "p":
			if len(fields) == 1 {
				container.Store.Print(out)
			} else if len(fields) == 2 {
				printToFile(errOut, container, fields[1])
			} else {
				fmt.Fprintln(errOut, "Invalid Command!")
			}
		default:
			fmt.Fprintln(errOut, "Invalid Command!")
		}
	}
}

func printToFile(errOut io.Writer, container *di.Container, path string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(errOut, "failed to open %s: %v\n", path, err)
		return
	}
	defer f.Close()
	container.Store.Print(f)
}
