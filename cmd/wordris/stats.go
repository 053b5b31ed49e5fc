package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordris/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics for every game mode",
	Long: `Summarise every game mode that has recorded scores: games played,
best and average score, words matched and when it was last played.`,
	Run: runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statistics: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-5s  %-6s  %-7s  %-6s  %s\n", "Mode", "Games", "Best", "Average", "Words", "Last played")
	fmt.Printf("  %-16s  %-5s  %-6s  %-7s  %-6s  %s\n", "----", "-----", "----", "-------", "-----", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-16s  %-5d  %-6d  %-7.0f  %-6d  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.TotalWords, s.LastPlayed.Format("2006-01-02 15:04"))
	}

	races, err := store.RecentRaces(1)
	if err == nil && len(races) > 0 {
		fmt.Println()
		fmt.Printf("Last race: %s, %d : %d (%s)\n", races[0].PackID, races[0].Score1, races[0].Score2, races[0].EndReason)
	}
}
