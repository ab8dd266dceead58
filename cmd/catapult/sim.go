package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
	"github.com/vovakirdan/catapult/internal/physics"
	"github.com/vovakirdan/catapult/internal/storage"
)

var (
	flagSimAngle   float64
	flagSimPower   float64
	flagSimBoostAt float64
	flagSimMax     time.Duration
	flagSimRecord  bool
	flagSimName    string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run one headless launch and print the result",
	Long: `Simulate a single run without a terminal UI.

The catapult is released with a fixed aim; optionally the boost is
triggered once the player passes a given x. The same seed and aim always
produce the same run.

Examples:
  catapult sim
  catapult sim --angle 30 --power 550 --seed 7
  catapult sim --boost-at 3000 --record --name bot`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimAngle, "angle", 45, "Launch angle in degrees above the horizon")
	simCmd.Flags().Float64Var(&flagSimPower, "power", 300, "Catapult pull distance")
	simCmd.Flags().Float64Var(&flagSimBoostAt, "boost-at", 0, "Boost once the player passes this x (0 = never)")
	simCmd.Flags().DurationVar(&flagSimMax, "max", 10*time.Minute, "Give up after this much simulated time")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Store the run in the database")
	simCmd.Flags().StringVar(&flagSimName, "name", "sim", "Player name stored with the run")
}

func runSim(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "catapult-sim")
	ctx := context.Background()

	var store *storage.Store
	if flagSimRecord {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open database: %w", err)
		}
		defer s.Close()
		store = s
	}

	params, err := loadParams(ctx, store, logger)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := catapult.Options{
		Holder: config.NewHolder(params),
		Seed:   seed,
		Logger: logger,
		Name:   flagSimName,
	}
	var publisher *storage.Publisher
	if store != nil {
		publisher = storage.NewPublisher(store, logger, storage.DefaultQueueSize)
		opts.Recorder = publisher
	}

	m := catapult.NewMachine(opts)
	ph := physics.New()
	frame := core.RuntimeConfig{TickRate: flagFPS}.TickDuration()

	m.Launch(-flagSimAngle*math.Pi/180, flagSimPower)

	var elapsed time.Duration
	boosted := false
	for m.State() == catapult.StateLaunched && elapsed < flagSimMax {
		if flagSimBoostAt > 0 && !boosted && m.Player().Pos.X >= flagSimBoostAt {
			boosted = m.Boost()
		}
		m.Advance(ph, frame)
		elapsed += frame
	}

	if publisher != nil {
		publisher.Close()
	}

	res := m.Result()
	fmt.Printf("Run       %s\n", res.ID)
	fmt.Printf("Seed      %d\n", seed)
	fmt.Printf("Aim       %.0f deg, power %.0f\n", flagSimAngle, flagSimPower)
	fmt.Printf("Duration  %s (simulated)\n", elapsed.Round(time.Millisecond))
	if m.State() == catapult.StateLaunched {
		fmt.Printf("Outcome   still flying\n")
	} else {
		fmt.Printf("Outcome   %s\n", res.Outcome)
	}
	fmt.Printf("Score     %d\n", m.Run().Score)
	fmt.Printf("Hits      %d\n", res.Hits)
	fmt.Printf("Distance  %.0f\n", res.Distance)
	if m.EndScreen() == catapult.EndReward {
		fmt.Printf("Reward    earned (threshold %d)\n", params.Player.Threshold)
	}

	if m.State() == catapult.StateLaunched {
		return fmt.Errorf("run did not end within %s", flagSimMax)
	}
	return nil
}
