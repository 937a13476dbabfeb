package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/speedkeys/internal/platform/tui"
	"github.com/vovakirdan/speedkeys/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start SpeedKeys with a menu",
	Long: `Start SpeedKeys in interactive menu mode.

Pick a mode to play, read how to play, or look at the scores of this
session. After a run, Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  ?            - How to play
  Tab          - Session scores
  Q            - Quit

Examples:
  speedkeys menu
  speedkeys menu --fps 60
  speedkeys menu --log-file ./speedkeys.log --log-level debug`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := setup(true)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	store, err := storage.Open()
	if err != nil {
		a.logger.Warn("run history unavailable", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			a.logger.Error("menu failed", "err", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		var goBack bool
		switch menuResult.Choice {
		case tui.ChoiceQuit:
			return

		case tui.ChoiceInfo:
			goBack, err = tui.RunInfo(a.cfg, cfg.ScreenW, cfg.ScreenH)

		case tui.ChoiceScoreboard:
			goBack, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)

		case tui.ChoicePlay:
			a.logger.Info("starting run", "mode", menuResult.ModeID)
			goBack, err = tui.Run(menuResult.ModeID, a.deps(), store, cfg)
		}

		if err != nil {
			a.logger.Error("screen failed", "choice", menuResult.Choice, "err", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if !goBack {
			return // User quit
		}
	}
}
