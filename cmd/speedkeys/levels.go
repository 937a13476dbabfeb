package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/speedkeys/internal/game"
	"github.com/vovakirdan/speedkeys/internal/registry"
	"github.com/vovakirdan/speedkeys/internal/session"
)

var flagLevelCount int

var levelsCmd = &cobra.Command{
	Use:   "levels [mode]",
	Short: "Show the time budget per level",
	Long: `Print how many seconds each level allows in the given mode
(default: classic), one row per budget bracket.

Examples:
  speedkeys levels
  speedkeys levels extended --count 40
  speedkeys levels custom --config ./fast.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelCount, "count", 30, "Number of levels to cover")
}

func runLevels(_ *cobra.Command, args []string) {
	modeID := game.ModeClassic
	if len(args) > 0 {
		modeID = args[0]
	}

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'speedkeys modes' to see available modes.")
		os.Exit(1)
	}
	if flagLevelCount <= 0 {
		fail("--count must be positive, got %d", flagLevelCount)
	}

	a, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	g, err := registry.Create(modeID, a.deps())
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Time per level - %s\n", g.Title())
	fmt.Println()
	fmt.Printf("  %-10s  %s\n", "Levels", "Seconds")
	fmt.Printf("  %-10s  %s\n", "------", "-------")

	for _, b := range session.Brackets(g.Rules(), flagLevelCount) {
		var levels string
		switch {
		case b.LastLevel == 0:
			levels = fmt.Sprintf("%d+", b.FirstLevel)
		case b.FirstLevel == b.LastLevel:
			levels = fmt.Sprintf("%d", b.FirstLevel)
		default:
			levels = fmt.Sprintf("%d-%d", b.FirstLevel, b.LastLevel)
		}
		fmt.Printf("  %-10s  %d\n", levels, b.Seconds)
	}
}
