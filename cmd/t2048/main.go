// t2048 is the 2048 sliding-tile game for the terminal, SSH, the browser and
// MCP agents.
//
// Usage:
//
//	t2048 list               - List board presets
//	t2048 play [preset]      - Play a preset (menu if omitted)
//	t2048 menu               - Pick presets interactively
//	t2048 scores <preset>    - Show high scores for a preset
//	t2048 serve              - Start SSH server for remote play
//	t2048 web                - Start HTTP/WebSocket server
//	t2048 mcp                - Serve MCP tools over stdio
//	t2048 defaults           - Print the default game config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Game config YAML
//	--difficulty <level>  - easy, normal or hard
//
// A .env file in the working directory is loaded first; T2048_DB and
// T2048_CONFIG supply defaults for --db and --config.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var version = "dev"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "t2048",
	Short:   "2048 - slide and merge tiles in your terminal",
	Version: version,
	Long: `2048 slides numbered tiles across a grid. Equal tiles merge into their
sum; every move that changes the board adds a 2 or a 4. The game ends when
no move can change the board.

Available commands:
  list     - Show board presets
  play     - Play a preset directly
  menu     - Interactive preset picker
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start HTTP and WebSocket server
  mcp      - Serve MCP tools for agents over stdio
  defaults - Print the default game config YAML

Examples:
  t2048 list
  t2048 play classic
  t2048 play large --difficulty hard
  t2048 menu
  t2048 serve --ssh :2222
  t2048 web --addr :8080
  t2048 scores classic`,
	PersistentPreRunE: applyEnvDefaults,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database (env T2048_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML (env T2048_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// applyEnvDefaults fills flags the user did not set from the environment.
func applyEnvDefaults(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if v := os.Getenv("T2048_DB"); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("T2048_CONFIG"); v != "" && !flags.Changed("config") {
		flagConfig = v
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}
