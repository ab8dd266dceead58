package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/catapult/internal/audio"
	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
	"github.com/vovakirdan/catapult/internal/platform/tui"
	"github.com/vovakirdan/catapult/internal/settings"
	"github.com/vovakirdan/catapult/internal/storage"
)

var flagNoAudio bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a local game session.

Controls:
  Up/Down      - Aim
  Left/Right   - Catapult power
  Space/Enter  - Launch, then boost while flying
  P            - Pause
  M / N        - Toggle music / sounds
  + / -        - Volume
  R            - Play again (after a run)
  Tab          - Leaderboard (title screen)
  Q/Ctrl+C     - Quit

The log is written to ~/.catapult/catapult.log.

Examples:
  catapult play
  catapult play --seed 42 --no-audio
  catapult play --config ./my-catapult.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable music and sound effects")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The terminal belongs to the UI, so the log goes to a file
	logPath := filepath.Join(config.HomeDir(), "catapult.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(logPath), err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "catapult")

	// Get terminal size early so the first frame fits
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	st, err := settings.Load(settings.DefaultPath())
	if err != nil {
		logger.Warn("could not load settings, using defaults", "err", err)
	}

	// Open storage; the game still works without it
	var recorder catapult.Recorder = catapult.NopRecorder{}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, playing offline", "err", err)
		store = nil
	}

	params, err := loadParams(context.Background(), store, logger)
	if err != nil {
		return err
	}
	holder := config.NewHolder(params)

	var publisher *storage.Publisher
	if store != nil {
		publisher = storage.NewPublisher(store, logger, storage.DefaultQueueSize)
		recorder = publisher
	}

	var sound *audio.Manager
	if !flagNoAudio {
		sound = audio.NewManager(logger)
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio unavailable", "err", err)
		}
	}

	runErr := tui.Run(tui.Options{
		Holder:       holder,
		Store:        store,
		Recorder:     recorder,
		Audio:        sound,
		Logger:       logger,
		Settings:     st,
		SettingsPath: settings.DefaultPath(),
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
	})

	// Drain pending writes before closing the store
	if sound != nil {
		sound.Close()
	}
	if publisher != nil {
		publisher.Close()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
