package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/platform/tui"
	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <scenario>",
	Short: "Play a scenario",
	Long: `Start playing the specified scenario.

Controls:
  WASD/Arrows  - Move
  P/Space      - Pause
  R            - Restart (after game over)
  Ctrl+S       - Screenshot to ~/.horde/screenshots
  Q/Ctrl+C     - Quit

Weapons fire on their own at the nearest enemy.

Difficulty options:
  easy   - Start at the lowest level, more health
  normal - Start at 30% of the ramp
  hard   - Start at 70% of the ramp, less health, bigger waves
  fixed  - No progression, stays at the config's initial level

Examples:
  horde play survival
  horde play arena --difficulty hard
  horde play survival --seed 42 --tps 120
  horde play survival --config ./my-horde.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	scenario := args[0]
	if !registry.Exists(scenario) {
		return fmt.Errorf("unknown scenario %q (run 'horde list' to see available scenarios)", scenario)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	_, err = tui.Run(tui.Options{
		Scenario: scenario,
		Config:   cfg,
		Runtime:  runtimeConfig(),
		Store:    store,
		Logger:   logger.With("scenario", scenario),
	})
	return err
}
