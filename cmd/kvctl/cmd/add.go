package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/kvtree/pkg/comm"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <addr> <key> <value>",
	Short: "Add a key-value pair",
	Long: `Add a key-value pair to a running kvserver.

Example:
  kvctl add 127.0.0.1:9000 mykey myvalue`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, key, value := args[0], args[1], args[2]

		stream, err := comm.DialLine(addr)
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", addr, err)
		}
		defer stream.Close()

		if err := stream.SendLine("a " + key + " " + value); err != nil {
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
	rootCmd.AddCommand(addCmd)
}
