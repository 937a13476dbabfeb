package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/speedkeys/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all available modes",
	Long: `Shows every registered mode with the rules it plays with.
The custom mode follows the loaded config file.`,
	Run: runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	a, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %-10s  %7s  %5s  %8s  %5s\n", maxIDLen, "ID", "Title", "Initial", "Floor", "Discount", "Every")
	fmt.Printf("  %-*s  %-10s  %7s  %5s  %8s  %5s\n", maxIDLen, "--", "-----", "-------", "-----", "--------", "-----")

	for _, m := range modes {
		g, err := registry.Create(m.ID, a.deps())
		if err != nil {
			fail("%v", err)
		}
		r := g.Rules()
		fmt.Printf("  %-*s  %-10s  %6ds  %4ds  %7ds  %5d\n",
			maxIDLen, m.ID, m.Title, r.TimeInitial, r.TimeMin, r.TimeDiscount, r.LevelsStep)
	}

	fmt.Println()
	fmt.Println("Run 'speedkeys play <id>' to play a mode.")
}
