// catapult is a terminal physics-launch game: aim the catapult, fly as far
// as possible, dodge ninjas and trees, and collect stars.
//
// Usage:
//
//	catapult play             - Play in this terminal
//	catapult serve            - Start SSH server for remote play
//	catapult sim              - Run one headless launch and print the result
//	catapult scores           - Show the leaderboard
//	catapult config <cmd>     - Inspect or reset the shared parameters
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.catapult/catapult.db)
//	--config <path>     - Load parameters from a YAML file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/storage"
)

const defaultDBPath = "~/.catapult/catapult.db"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catapult",
	Short: "Catapult - launch yourself across the terminal",
	Long: `Catapult is a terminal physics game. Pull back the catapult, launch,
bounce off crates and mushrooms, dive with the boost and grab stars for a
few seconds of invulnerability. Trees, stumps and ninjas end the run.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  sim      - Headless launch with a fixed aim
  scores   - View the leaderboard
  config   - Show, edit or reset the shared parameters

Examples:
  catapult play
  catapult serve --ssh :2222
  catapult sim --angle 40 --power 500 --seed 7
  catapult scores --week`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadEnv(); err != nil {
			return fmt.Errorf("cannot load .env: %w", err)
		}
		if !cmd.Flags().Changed("db") {
			flagDBPath = config.GetEnv(config.EnvDB, flagDBPath)
		}
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to the runs and config database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a parameters YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the --log-level threshold.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadParams returns the local parameters with the stored overrides merged
// on top. A failing store only costs the overrides; rejected values only
// cost the keys they name.
func loadParams(ctx context.Context, store *storage.Store, logger *log.Logger) (config.Params, error) {
	params, err := config.Load(flagConfig)
	if config.IsInvalid(err) {
		logger.Warn("config values rejected, using defaults for them", "err", err)
	} else if err != nil {
		return params, err
	}
	if store == nil {
		return params, nil
	}
	merged, err := store.LoadParams(ctx, params)
	switch {
	case config.IsInvalid(err):
		logger.Warn("stored parameters rejected, using local values for them", "err", err)
	case err != nil:
		logger.Warn("could not load stored parameters, using local values", "err", err)
		return params, nil
	}
	return merged, nil
}
