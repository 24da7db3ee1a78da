package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/kvtree/pkg/comm"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <addr> <path>",
	Short: "Replay a file of commands against a running kvserver",
	Long: `Ask a running kvserver to read and interpret every line of a
file on its own filesystem, as if each line had been sent over this
connection.

Example:
  kvctl replay 127.0.0.1:9000 /tmp/commands.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, path := args[0], args[1]

		stream, err := comm.DialLine(addr)
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", addr, err)
		}
		defer stream.Close()

		if err := stream.SendLine("f " + path); err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}

		response, err := stream.ReceiveLine()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		fmt.Println(response)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
