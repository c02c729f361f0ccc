package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Play a preset",
	Long: `Start playing the given preset, by id or name. Without one, the
preset menu opens.

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  P/Esc             - Pause
  R                 - Restart
  B                 - Back (when paused or over)
  Ctrl+S            - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 4s spawn 10% of the time, two starting tiles
  normal - 4s spawn 30% of the time
  hard   - 4s spawn 50% of the time

Examples:
  t2048 play
  t2048 play classic
  t2048 play 2048_6x6 --difficulty hard
  t2048 play custom --config ./my-2048.yaml
  t2048 play tiny --seed 42`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: t2048.PresetNames(),
	Run:       runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runMenu(cmd, args)
		return
	}

	p, err := t2048.LookupPreset(args[0])
	if err != nil || !registry.Exists(p.ID) {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available presets.")
		os.Exit(1)
	}

	mustLoadGameConfig()

	game, err := registry.Create(p.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
