package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/platform/tui"
	"github.com/vovakirdan/voidrun/internal/run"
	"github.com/vovakirdan/voidrun/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start voidrun with the title menu",
	Long: `Start voidrun in interactive mode.

Pick "Launch new run" to fly a run, "Flight log" to browse past runs.
Quitting a run logs it and returns to the title menu.

Controls:
  WASD/Arrows  - Fly (in combat) / move the cursor
  1-4, Enter   - Pick an option
  F            - Fitting screen
  U            - Upgrade hull (at a shop)
  P            - Pause
  Esc/B        - Back / leave the shop
  Ctrl+S       - Arena screenshot
  Q/Ctrl+C     - Leave the run

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  voidrun play
  voidrun play --fps 30
  voidrun play --difficulty hard
  voidrun play --config ./my-combat.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.voidrun/voidrun.log", "Log file (the terminal belongs to the game)")
}

func runPlay(_ *cobra.Command, _ []string) {
	combatCfg, err := loadCombatConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "voidrun")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.MenuHistory:
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}

		case tui.MenuNewRun:
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			ctrl := run.New(
				run.WithSeed(seed),
				run.WithConfig(combatCfg),
				run.WithLogger(logger),
			)
			logger.Info("launching run", "run", ctrl.ID(), "seed", seed, "difficulty", flagDifficulty)
			if err := tui.Run(ctrl, store, logger, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}
			continue
		}
		break
	}

	if store != nil {
		store.Close()
	}
}

// openLogFile opens path for appending, expanding ~ and creating parents.
func openLogFile(path string) (*os.File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
