/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kvctl",
	Short: "TCP client for the kvtree key/value server",
	Long: `kvctl dials a running kvserver and sends one wire-protocol
command per invocation, printing the response.`,
}

// Execute adds all child commands to rootCmd and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
