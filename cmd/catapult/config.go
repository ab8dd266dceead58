package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, edit, reset or export the shared parameters",
	Long: `Inspect the effective parameters: the local YAML (or the embedded
defaults) with the overrides stored in the database merged on top.

Examples:
  catapult config show
  catapult config keys
  catapult config set player.boost 2200
  catapult config reset
  catapult config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective parameters as YAML",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("error opening database: %w", err)
		}
		defer store.Close()

		params, err := loadParams(context.Background(), store, newLogger(os.Stderr, "catapult"))
		if err != nil {
			return err
		}
		data, err := config.Marshal(params)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the reward keys and their ranges",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Reward keys:")
		for _, e := range config.EditTable() {
			fmt.Printf("  %-28s  %-16s  [%g, %g]\n", e.Key, e.Label, e.Range.Min, e.Range.Max)
		}
		fmt.Println()
		fmt.Println("All numeric keys:")
		for _, k := range config.Keys() {
			fmt.Printf("  %s\n", k)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a new value for one parameter",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		if strings.HasPrefix(args[0], "world.") {
			return fmt.Errorf("%s is a local setting, edit the YAML file instead", args[0])
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}

		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("error opening database: %w", err)
		}
		defer store.Close()

		ctx := context.Background()
		params, err := loadParams(ctx, store, newLogger(os.Stderr, "catapult"))
		if err != nil {
			return err
		}
		if err := params.Set(args[0], v); err != nil {
			return err
		}
		if err := params.Validate(); err != nil {
			return fmt.Errorf("refusing to store %s = %g: %w", args[0], v, err)
		}
		if err := store.SaveParams(ctx, params); err != nil {
			return err
		}
		fmt.Printf("%s = %g\n", args[0], v)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored overrides",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("error opening database: %w", err)
		}
		defer store.Close()

		if err := store.ResetParams(context.Background()); err != nil {
			return err
		}
		fmt.Println("Stored parameters cleared; defaults apply to the next run.")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective parameters to a YAML file",
	Long: `Write the effective parameters to path, or to
~/.catapult/configs/catapult.yaml when no path is given. The file is picked
up by every later command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := config.UserConfigPath(config.FileName)
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("cannot resolve home directory, pass a path")
		}

		var store *storage.Store
		if s, err := storage.Open(flagDBPath); err == nil {
			defer s.Close()
			store = s
		}
		params, err := loadParams(context.Background(), store, newLogger(os.Stderr, "catapult"))
		if err != nil {
			return err
		}
		if err := config.Save(path, params); err != nil {
			return err
		}
		fmt.Printf("Parameters written to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configKeysCmd, configSetCmd, configResetCmd, configInitCmd)
}
