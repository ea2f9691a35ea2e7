package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crush/internal/games/crush/boards"
	"github.com/vovakirdan/tui-crush/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes and builtin boards",
	Long:  `Shows every registered game mode and the boards compiled into crush.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	fmt.Println("Modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		line := fmt.Sprintf("  %-*s  %s", maxIDLen, g.ID, g.Title)
		if g.Description != "" {
			line += " - " + g.Description
		}
		fmt.Println(line)
	}

	builtin, err := boards.Builtin().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading boards: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Boards:")
	fmt.Println()

	maxIDLen = 2
	for _, b := range builtin {
		maxIDLen = max(maxIDLen, len(b.ID))
	}
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "----", "----")
	for _, b := range builtin {
		fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, b.ID, fmt.Sprintf("%dx%d", b.Size, b.Size), b.Name)
	}

	fmt.Println()
	fmt.Println("Run 'crush play --board <id>' to play a board.")
}
