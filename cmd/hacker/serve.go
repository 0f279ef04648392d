package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hacker/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu and
its own rounds ledger. Nothing is shared between connections and
nothing outlives a connection.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hacker/host_key

Examples:
  hacker serve                           # Listen on :23234 with auto-generated key
  hacker serve --ssh :2222               # Listen on port 2222
  hacker serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addRoundFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rc := runtimeFromConfig(cfg)
	if err := applyRoundFlags(&rc); err != nil {
		return err
	}

	logger, closer, err := consoleLogger(cfg, "hacker-ssh")
	if err != nil {
		return err
	}
	defer closer.Close()

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.IdleTimeout = flagIdleTimeout
	serverCfg.Runtime = rc
	serverCfg.Keys = tui.NewKeyMap(cfg.Keys)

	server, err := tui.NewSSHServer(serverCfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting hacker SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.Serve(ctx)
}
