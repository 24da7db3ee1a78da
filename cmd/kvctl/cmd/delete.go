package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/kvtree/pkg/comm"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <addr> <key>",
	Short: "Delete a key-value pair",
	Long: `Delete a key-value pair from a running kvserver.

Example:
  kvctl delete 127.0.0.1:9000 mykey`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, key := args[0], args[1]

		stream, err := comm.DialLine(addr)
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", addr, err)
		}
		defer stream.Close()

		if err := stream.SendLine("d " + key); err != nil {
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
	rootCmd.AddCommand(deleteCmd)
}
