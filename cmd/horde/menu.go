package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/platform/tui"
	"github.com/vovakirdan/horde/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a scenario from an interactive list",
	Long: `Open the scenario picker. Finished or abandoned runs come back to it,
so several runs can be played in one sitting.

Keys:
  Up/Down, j/k   move
  Enter, Space   start the highlighted scenario
  Tab            best runs per scenario
  Q, Ctrl+C      quit

Examples:
  horde menu
  horde menu --difficulty hard
  horde menu --tps 30 --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	var store *storage.Store
	if s, err := storage.Open(flagDBPath); err != nil {
		logger.Warn("could not open run database", "error", err)
	} else {
		store = s
		defer store.Close()
	}

	rt := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, rt)
		if err != nil {
			return err
		}
		rt = res.Config

		var again bool
		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			again, err = tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
		default:
			again, err = tui.Run(tui.Options{
				Scenario: res.Scenario,
				Config:   cfg,
				Runtime:  rt,
				Store:    store,
				Logger:   logger.With("scenario", res.Scenario),
			})
		}
		if err != nil || !again {
			return err
		}
	}
}
