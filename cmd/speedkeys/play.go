package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/speedkeys/internal/game"
	"github.com/vovakirdan/speedkeys/internal/platform/tui"
	"github.com/vovakirdan/speedkeys/internal/registry"
	"github.com/vovakirdan/speedkeys/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: classic).

A 3-2-1 countdown runs first. Then type the word on screen and press
Enter before the timer runs out. Scores are kept until you quit.

Modes:
  classic   - 10 seconds per word at first, 2 seconds less every 5 levels
  extended  - Same rules with 20 seconds at first
  custom    - Rules exactly as written in the config file

Controls:
  Enter      - Submit the word
  Esc        - Back (exits after the run)
  R/Enter    - Play again (after game over)
  Ctrl+C     - Quit

Examples:
  speedkeys play
  speedkeys play extended
  speedkeys play custom --config ./fast.yaml
  speedkeys play --words ./words.txt --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	modeID := game.ModeClassic
	if len(args) > 0 {
		modeID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'speedkeys modes' to see available modes.")
		os.Exit(1)
	}

	a, err := setup(true)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	// Run history lives as long as the process
	store, err := storage.Open()
	if err != nil {
		a.logger.Warn("run history unavailable", "err", err)
		store = nil
	}

	_, runErr := tui.Run(modeID, a.deps(), store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		a.close()
		fail("running game: %v", runErr)
	}
}
