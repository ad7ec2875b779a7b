// voidrun is a roguelike space-combat run played in the terminal.
//
// Usage:
//
//	voidrun play              - Title menu, runs and the flight log
//	voidrun sim               - One headless combat session flown by the autopilot
//	voidrun catalog [kind]    - List items, relics or hulls
//	voidrun history           - Show best runs and recent sessions
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.voidrun/history.db)
//	--config <path>       - Custom combat tuning YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/voidrun/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voidrun",
	Short: "voidrun - a roguelike frigate run in your terminal",
	Long: `voidrun is a roguelike space-combat game. Fly a frigate through
sector maps of fights, events, shops and repair docks, fit the modules
you salvage and see how deep you get.

Available commands:
  play     - Title menu and interactive runs
  sim      - Headless combat session with a simple autopilot
  catalog  - List items, relics and hulls
  history  - Best runs and recent sessions

Examples:
  voidrun play
  voidrun play --difficulty hard --seed 42
  voidrun sim --node boss --level 5
  voidrun catalog relics
  voidrun history`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.voidrun/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom combat config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds a logger at the --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadCombatConfig reads the combat tuning and applies --difficulty.
func loadCombatConfig() (config.CombatConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.CombatConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	cfg, err := config.LoadCombat(flagConfig)
	if err != nil {
		return config.CombatConfig{}, err
	}
	if flagDifficulty != "" {
		config.ApplyCombatPreset(&cfg, preset)
	}
	return cfg, nil
}
