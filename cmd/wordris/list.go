package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordris/internal/games/wordris/words"
	"github.com/vovakirdan/wordris/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and word packs",
	Long:  `Shows the registered game modes and every word pack that can be played.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	fmt.Println("Game modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	packs, err := words.Available(flagPackDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading word packs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Word packs:")
	fmt.Println()

	maxIDLen = 2
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Words", "Name")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "-----", "----")
	for _, p := range packs {
		fmt.Printf("  %-*s  %-5d  %s\n", maxIDLen, p.ID, len(p.Words), p.Name)
	}

	fmt.Println()
	fmt.Println("Run 'wordris play' for the campaign or 'wordris play <pack>' for endless mode.")
}
