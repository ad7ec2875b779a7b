package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/voidrun/internal/combat"
	"github.com/vovakirdan/voidrun/internal/run"
	"github.com/vovakirdan/voidrun/internal/ship"
	"github.com/vovakirdan/voidrun/internal/storage"
)

var (
	flagSimNode   string
	flagSimFrames int
	flagSimLevel  int
	flagSimSector int
	flagSimRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Fly one headless combat session with the autopilot",
	Long: `Run a single combat session without a terminal UI. The autopilot
flees nearby enemies, sweeps up loot and otherwise holds the arena centre;
weapons and repair modules cycle on their own. Level-ups take a random
item. Progress is logged to stderr, the result printed to stdout.

Examples:
  voidrun sim
  voidrun sim --node boss --level 6 --seed 7
  voidrun sim --frames 3600 --log-level debug
  voidrun sim --difficulty hard --sector 8 --record`,
	Run: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimNode, "node", "standard", "Session kind: standard or boss")
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 10*60*combat.FramesPerSecond, "Frame budget before giving up")
	simCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Player level")
	simCmd.Flags().IntVar(&flagSimSector, "sector", 1, "Run depth for difficulty scaling")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the session to the history database")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "voidrun-sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadCombatConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var node combat.NodeKind
	switch flagSimNode {
	case "standard":
		node = combat.NodeStandard
	case "boss":
		node = combat.NodeBoss
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown node %q (want standard or boss)\n", flagSimNode)
		os.Exit(1)
	}
	if flagSimLevel < 1 || flagSimFrames < 1 {
		fmt.Fprintln(os.Stderr, "Error: --level and --frames must be positive")
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	picks := combat.NewRand(seed + 1)

	ps := ship.NewPlayer()
	for ps.Level < flagSimLevel {
		ps = run.LevelUp(ps, ship.ItemPool[picks.Intn(len(ship.ItemPool))])
	}

	sess := combat.New(combat.Start{
		Player: ps,
		Node:   node,
		Vitals: combat.VitalsOf(ps),
		Sector: flagSimSector,
	}, cfg, combat.NewRand(seed))

	logger.Info("session start", "node", node, "level", ps.Level, "sector", flagSimSector, "seed", seed)

	outcome := "timeout"
	var loot combat.LootTotals
loop:
	for range flagSimFrames {
		res := sess.Step(combat.Autopilot(sess.Frame(), combat.DefaultDangerRadius))
		switch res.Outcome {
		case combat.OutcomeLevelUp:
			item := ship.ItemPool[picks.Intn(len(ship.ItemPool))]
			ps = run.LevelUp(ps, item)
			sess.UpdatePlayer(ps)
			sess.AcknowledgeLevelUp()
			logger.Info("level up", "frame", sess.Frame().Frame, "level", ps.Level, "item", item.ID)
		case combat.OutcomeCompleted:
			outcome = "completed"
			loot = res.Completion.Loot
			break loop
		case combat.OutcomeDied:
			outcome = "died"
			break loop
		}
	}

	f := sess.Frame()
	if outcome != "completed" {
		loot = f.Collected
	}
	logger.Info("session end", "outcome", outcome, "frame", f.Frame, "kills", f.Kills)

	secs := f.Frame / combat.FramesPerSecond
	hp, maxHP := f.Player.HP, f.Player.MaxHP
	fmt.Printf("Outcome    %s\n", outcome)
	fmt.Printf("Frames     %d (%d:%02d)\n", f.Frame, secs/60, secs%60)
	fmt.Printf("Kills      %d/%d\n", f.Kills, f.KillTarget)
	fmt.Printf("Loot       %d cr, %d mat, %d xp\n", loot.Credits, loot.Materials, loot.XP)
	fmt.Printf("Vitals     shield %.0f/%.0f  armor %.0f/%.0f  hull %.0f/%.0f\n",
		hp.Shield, maxHP.Shield, hp.Armor, maxHP.Armor, hp.Hull, maxHP.Hull)
	fmt.Printf("Level      %d\n", f.Level)
	fmt.Printf("Snapshot   %016x\n", sess.Snapshot().Hash())

	if flagSimRecord {
		recordSim(f, node, outcome, loot, seed)
	}
	sess.Close()
}

// recordSim writes the finished session to the history database.
func recordSim(f combat.Frame, node combat.NodeKind, outcome string, loot combat.LootTotals, seed int64) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	_, err = store.SaveSession(storage.SessionRecord{
		RunID:     fmt.Sprintf("sim-%d", seed),
		Node:      "sim-" + node.String(),
		Outcome:   outcome,
		Kills:     f.Kills,
		Frames:    f.Frame,
		Credits:   loot.Credits,
		Materials: loot.Materials,
		XP:        loot.XP,
		Level:     f.Level,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		os.Exit(1)
	}
}
