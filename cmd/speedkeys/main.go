// speedkeys is a terminal typing-speed game.
//
// Usage:
//
//	speedkeys menu              - Start menu to pick a mode interactively
//	speedkeys play [mode]       - Play a mode directly (default: classic)
//	speedkeys modes             - List available modes
//	speedkeys levels [mode]     - Show the time budget per level
//	speedkeys words [file]      - Check a word list
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible word order
//	--config <path>      - Game config YAML
//	--words <path>       - Word list, one word per line
//	--log-file <path>    - Write logs to a file while the game runs
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/speedkeys/internal/game"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagWords    string
	flagLogFile  string
	flagLogLevel string
)

// envFlags maps environment variables to the global flags they default.
var envFlags = map[string]string{
	"SPEEDKEYS_CONFIG":    "config",
	"SPEEDKEYS_WORDS":     "words",
	"SPEEDKEYS_LOG_FILE":  "log-file",
	"SPEEDKEYS_LOG_LEVEL": "log-level",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "speedkeys",
	Short: "SpeedKeys - Type the word before the clock runs out",
	Long: `SpeedKeys is a typing game for the terminal. A random word appears,
you type it and press Enter before the level timer expires. Every correct
word scores a point and starts the next level; the time budget shrinks
every few levels.

Available commands:
  menu     - Interactive menu
  play     - Play a mode directly
  modes    - Show all modes and their rules
  levels   - Show the time budget per level
  words    - Check a word list

Settings can also come from the environment or a .env file:
  SPEEDKEYS_CONFIG, SPEEDKEYS_WORDS, SPEEDKEYS_LOG_FILE, SPEEDKEYS_LOG_LEVEL

Examples:
  speedkeys menu
  speedkeys play
  speedkeys play extended --seed 42
  speedkeys levels classic --count 30
  speedkeys words ./my-words.txt`,
	PersistentPreRunE: applyEnv,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagWords, "words", "", "Path to a word list (default: built-in list)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(wordsCmd)
}

// applyEnv loads .env and fills every global flag the user did not set
// from its environment variable.
func applyEnv(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine
	_ = godotenv.Load()

	flags := cmd.Flags()
	for env, name := range envFlags {
		value, ok := os.LookupEnv(env)
		if !ok || value == "" || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}
