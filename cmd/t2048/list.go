package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List board presets",
	Long:  `Shows every board preset with its size and merge ceiling.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg, err := loadGameConfig("")
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
		cfg = t2048.CurrentConfig()
	}

	fmt.Println("Available presets:")
	fmt.Println()

	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, p := range t2048.Presets {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Board")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxNameLen, "----", "-----")

	for _, p := range t2048.Presets {
		p = p.WithConfig(cfg)
		fmt.Printf("  %-*s  %-*s  %dx%d, merges below %d\n",
			maxIDLen, p.ID, maxNameLen, p.Name, p.Width, p.Height, p.Ceiling)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id or name>' to play.")
}
