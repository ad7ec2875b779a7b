package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/voidrun/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show best runs and recent sessions",
	Long: `Display lifetime stats, the best runs (deepest first) and the most
recent combat sessions.

Examples:
  voidrun history
  voidrun history --limit 25
  voidrun history --db ./history.db`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Rows per table")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	runs, err := store.TopRuns(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	if stats.Runs == 0 && stats.Sessions == 0 {
		fmt.Println("No flights logged yet.")
		fmt.Println()
		fmt.Println("Play 'voidrun play' to start the log!")
		return
	}

	fmt.Println("Flight log")
	fmt.Println()
	fmt.Printf("  Runs %d  |  Sessions %d (%d won, %d lost)  |  Kills %d\n",
		stats.Runs, stats.Sessions, stats.SessionsWon, stats.SessionsLost, stats.TotalKills)
	fmt.Printf("  Best level %d  |  Deepest %d tiers", stats.BestLevel, stats.BestTiers)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  |  Last played %s", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	fmt.Println()
	fmt.Println("Best runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("  No finished runs yet.")
	} else {
		fmt.Printf("  %-4s  %-5s  %-6s  %-5s  %-6s  %-8s  %-10s  %s\n", "Rank", "Tiers", "Sector", "Level", "Kills", "Credits", "Ended", "Date")
		fmt.Printf("  %-4s  %-5s  %-6s  %-5s  %-6s  %-8s  %-10s  %s\n", "----", "-----", "------", "-----", "-----", "-------", "-----", "----")
		for i, r := range runs {
			fmt.Printf("  %-4d  %-5d  %-6d  %-5d  %-6d  %-8d  %-10s  %s\n",
				i+1, r.TiersCleared, r.Sector, r.Level, r.Kills, r.Credits, r.EndedReason,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	fmt.Println("Recent sessions")
	fmt.Println()
	if len(sessions) == 0 {
		fmt.Println("  No sessions yet.")
		return
	}
	fmt.Printf("  %-13s  %-10s  %-5s  %-7s  %-16s  %-5s  %s\n", "Node", "Outcome", "Kills", "Time", "Loot", "Level", "Date")
	fmt.Printf("  %-13s  %-10s  %-5s  %-7s  %-16s  %-5s  %s\n", "----", "-------", "-----", "----", "----", "-----", "----")
	for _, s := range sessions {
		secs := s.Frames / 60
		fmt.Printf("  %-13s  %-10s  %-5d  %-7s  %-16s  %-5d  %s\n",
			s.Node, s.Outcome, s.Kills,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			fmt.Sprintf("%dcr %dmat %dxp", s.Credits, s.Materials, s.XP),
			s.Level, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}
