package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP tools over stdio",
	Long: `Serve 2048 as Model Context Protocol tools on stdin/stdout, for agents.

Tools: list_presets, new_game, move, game_state, end_game.
Logs go to stderr; stdout carries only the protocol.

Example MCP client entry:
  {"command": "t2048", "args": ["mcp"]}`,
	Run: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) {
	if _, err := loadGameConfig(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	srv := mcp.New(version, store)
	err := srv.ServeStdio()

	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}
