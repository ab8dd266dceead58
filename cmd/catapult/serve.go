package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/platform/tui"
	"github.com/vovakirdan/catapult/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catapult SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game session; the SSH user name is the
player name. All sessions share the leaderboard and the parameters, so a
reward picked by one player changes the next run of everyone.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.catapult/host_key

Environment:
  CATAPULT_SSH_ADDR, CATAPULT_HOST_KEY and CATAPULT_DB provide defaults
  (a .env file in the working directory is loaded first).

Examples:
  catapult serve                           # Listen on :23234 with auto-generated key
  catapult serve --ssh :2222               # Listen on port 2222
  catapult serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "catapult-ssh")

	if !cmd.Flags().Changed("ssh") {
		flagSSHAddr = config.GetEnv(config.EnvSSHAddr, flagSSHAddr)
	}
	if !cmd.Flags().Changed("host-key") {
		flagHostKey = config.GetEnv(config.EnvHostKey, flagHostKey)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, serving without leaderboard", "err", err)
		store = nil
	}

	params, err := loadParams(context.Background(), store, logger)
	if err != nil {
		return err
	}
	holder := config.NewHolder(params)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	var publisher *storage.Publisher
	var server *tui.SSHServer
	if store != nil {
		publisher = storage.NewPublisher(store, logger, storage.DefaultQueueSize)
		server, err = tui.NewSSHServer(cfg, holder, store, publisher, logger)
	} else {
		server, err = tui.NewSSHServer(cfg, holder, nil, nil, logger)
	}
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting catapult SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()

	if publisher != nil {
		publisher.Close()
	}
	if store != nil {
		store.Close()
	}
	return serveErr
}
