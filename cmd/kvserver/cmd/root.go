/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/kvtree/pkg/api"
	"github.com/ssargent/kvtree/pkg/comm"
	"github.com/ssargent/kvtree/pkg/config"
	"github.com/ssargent/kvtree/pkg/di"
	"github.com/ssargent/kvtree/pkg/supervisor"
)

var configPath string

// rootCmd is the entire server process: one positional argument, the
// listen port. There are no subcommands — spec.md's process interface
// is a single binary, not a CLI tree.
var rootCmd = &cobra.Command{
	Use:   "kvserver <port>",
	Short: "Concurrent in-memory key/value tree server",
	Long: `kvserver hosts a concurrent hand-over-hand-locked binary search
tree behind a line-oriented TCP protocol, with an operator console on
stdin.

Example:
  kvserver 9000`,
	Args: cobra.ExactArgs(1),
	RunE: runServer,
}

// Execute runs the root command. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (optional)")
}

func runServer(cmd *cobra.Command, args []string) error {
	port, err := strconv.Atoi(args[0])
	if err != nil || port <= 0 || port > 65535 {
		fmt.Fprintf(os.Stderr, "invalid port %q\n", args[0])
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := log.New(os.Stderr, "kvserver: ", log.LstdFlags)

	container := di.NewContainer()

	addr := fmt.Sprintf("%s:%d", cfg.Bind, port)
	listener, err := comm.ListenAndServe(addr, container.WorkerFactory())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to listen on %s: %v\n", addr, err)
		os.Exit(1)
	}
	logger.Printf("listening on %s", listener.Addr())

	adminCtx, cancelAdmin := context.WithCancel(context.Background())
	if cfg.Admin.Enabled {
		go func() {
			if err := api.StartServer(adminCtx, container.Store, container.Supervisor, container.Metrics, api.ServerConfig{Bind: cfg.Admin.Bind}); err != nil {
				logger.Printf("diagnostics endpoint stopped: %v", err)
			}
		}()
	}

	sigCtx, cancelSig := context.WithCancel(context.Background())
	go supervisor.WatchSignals(sigCtx, container.Supervisor)

	runConsole(os.Stdin, os.Stdout, os.Stderr, container)

	cancelSig()
	cancelAdmin()
	container.Supervisor.Shutdown()
	listener.Close()

	return nil
}
