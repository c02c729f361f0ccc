// Package t2048 implements the 2048 sliding-tile puzzle as an arcade game.
// Board rules live in internal/board; this package adds presets, animation,
// and rendering.
package t2048

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

// Preset is a named board variant.
type Preset struct {
	ID              string  // Registry and score id
	Name            string  // Short name used by the CLI and remote clients
	Title           string  // Display name
	Width           int     // Columns
	Height          int     // Rows
	Ceiling         int     // Merge ceiling
	FourProbability float64 // Chance a spawned tile is a 4
	InitialTiles    int     // Tiles spawned at the start of a game
	Custom          bool    // Geometry comes from the config file
}

// Presets lists the built-in variants in menu order.
var Presets = []Preset{
	{ID: "2048", Name: "classic", Title: "2048", Width: 4, Height: 4, Ceiling: 2048},
	{ID: "2048_8x8", Name: "original", Title: "2048 (8x8)", Width: 8, Height: 8, Ceiling: 2048},
	{ID: "2048_3x3", Name: "small", Title: "2048 (3x3)", Width: 3, Height: 3, Ceiling: 2048},
	{ID: "2048_6x6", Name: "large", Title: "2048 (6x6)", Width: 6, Height: 6, Ceiling: 2048},
	{ID: "2048_2x2", Name: "tiny", Title: "2048 (2x2, to 64)", Width: 2, Height: 2, Ceiling: 64},
	{ID: "2048_custom", Name: "custom", Title: "2048 (Custom)", Custom: true},
}

func init() {
	for i := range Presets {
		p := Presets[i].WithConfig(config.DefaultT2048Config())
		Presets[i].FourProbability = p.FourProbability
		Presets[i].InitialTiles = p.InitialTiles
		if Presets[i].Custom {
			Presets[i].Width, Presets[i].Height, Presets[i].Ceiling = p.Width, p.Height, p.Ceiling
		}
	}
}

// LookupPreset finds a preset by id ("2048_8x8") or name ("original").
// An empty key selects the classic board.
func LookupPreset(key string) (Preset, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return Presets[0], nil
	}
	for _, p := range Presets {
		if p.ID == key || p.Name == key {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("t2048: unknown preset %q", key)
}

// PresetNames returns the short names of all presets.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

// WithConfig applies spawn settings from cfg. Custom presets also take the
// board size and merge ceiling from it.
func (p Preset) WithConfig(cfg config.T2048Config) Preset {
	p.FourProbability = cfg.Board.SpawnFourProbability
	p.InitialTiles = cfg.Board.InitialTiles
	if p.Custom {
		p.Width = cfg.Board.Width
		p.Height = cfg.Board.Height
		p.Ceiling = cfg.Board.MergeCeiling
	}
	p.InitialTiles = max(p.InitialTiles, 1)
	if p.InitialTiles > p.Width*p.Height {
		p.InitialTiles = p.Width * p.Height
	}
	return p
}

// NewBoard creates an empty board for this preset.
func (p Preset) NewBoard(seed int64) (*board.Board, error) {
	b, err := board.New(p.Width, p.Height,
		board.WithCeiling(p.Ceiling),
		board.WithFourProbability(p.FourProbability),
		board.WithSeed(seed),
	)
	if err != nil {
		return nil, fmt.Errorf("t2048: preset %s: %w", p.Name, err)
	}
	return b, nil
}

// String returns a one-line description such as "classic 4x4, merges below 2048".
func (p Preset) String() string {
	return fmt.Sprintf("%s %dx%d, merges below %d", p.Name, p.Width, p.Height, p.Ceiling)
}
