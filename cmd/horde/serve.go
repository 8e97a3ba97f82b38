package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host horde over SSH",
	Long: `Serve the scenario menu to anyone who connects over SSH.

Every connection runs its own simulation. Finished runs go to the shared
run database given by --db, so all players see one board. Without
--host-key a key is generated once under ~/.horde/host_key.

Examples:
  horde serve
  horde serve --ssh :2222 --idle-timeout 10m
  horde serve --difficulty hard --db /var/lib/horde/runs.db

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "host key file (generated when empty)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "disconnect sessions idle this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	sim, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger("horde-ssh")
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagTPS,
		Sim:         sim,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx)
}
