package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var flagSamples int

var wordsCmd = &cobra.Command{
	Use:   "words [file]",
	Short: "Check a word list",
	Long: `Load a word list the way the game does and print a summary with a
few random draws. Without a file, the --words flag, the config's
words.path or the built-in list is used, in that order.

The file holds one word per line. Surrounding whitespace is trimmed and
blank lines are skipped.

Examples:
  speedkeys words
  speedkeys words ./my-words.txt
  speedkeys words ./my-words.txt --samples 10 --seed 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWords,
}

func init() {
	wordsCmd.Flags().IntVar(&flagSamples, "samples", 5, "Number of random draws to show")
}

func runWords(_ *cobra.Command, args []string) {
	if len(args) > 0 {
		flagWords = args[0]
	}

	a, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	list := a.words.Words()
	lengths := lo.Map(list, func(w string, _ int) int {
		return len([]rune(w))
	})
	longest := lo.MaxBy(list, func(x, y string) bool {
		return len([]rune(x)) > len([]rune(y))
	})

	fmt.Printf("Source:   %s\n", a.words.Name())
	fmt.Printf("Words:    %d (%d distinct)\n", len(list), len(lo.Uniq(list)))
	fmt.Printf("Length:   %d to %d, average %.1f\n",
		lo.Min(lengths), lo.Max(lengths), float64(lo.Sum(lengths))/float64(len(lengths)))
	fmt.Printf("Longest:  %s\n", longest)

	if flagSamples > 0 {
		fmt.Println()
		fmt.Println("Samples:")
		for range flagSamples {
			fmt.Printf("  %s\n", a.words.Random())
		}
	}
}
