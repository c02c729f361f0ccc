// Package config loads the 2048 game configuration from YAML.
package config

import (
	"fmt"
	"strings"
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines the grid and the merge and spawn rules.
type BoardConfig struct {
	Width                int     `yaml:"width"`
	Height               int     `yaml:"height"`
	MergeCeiling         int     `yaml:"merge_ceiling"`          // Tiles at or above this value never merge
	SpawnFourProbability float64 `yaml:"spawn_four_probability"` // Chance a spawned tile is a 4
	InitialTiles         int     `yaml:"initial_tiles"`
}

// AnimationConfig defines animation lengths in ticks.
type AnimationConfig struct {
	SlideTicks      int `yaml:"slide_ticks"`
	PopTicks        int `yaml:"pop_ticks"`
	MergeFlashTicks int `yaml:"merge_flash_ticks"`
}

// Validate checks that the configuration describes a playable board.
func (c T2048Config) Validate() error {
	b := c.Board
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("config: invalid board size %dx%d", b.Width, b.Height)
	}
	if b.MergeCeiling < 4 {
		return fmt.Errorf("config: merge ceiling %d must be at least 4", b.MergeCeiling)
	}
	if b.SpawnFourProbability < 0 || b.SpawnFourProbability > 1 {
		return fmt.Errorf("config: spawn four probability %v outside [0, 1]", b.SpawnFourProbability)
	}
	if b.InitialTiles < 1 || b.InitialTiles > b.Width*b.Height {
		return fmt.Errorf("config: %d initial tiles do not fit a %dx%d board", b.InitialTiles, b.Width, b.Height)
	}

	a := c.Animation
	if a.SlideTicks <= 0 || a.PopTicks <= 0 || a.MergeFlashTicks <= 0 {
		return fmt.Errorf("config: animation ticks must be positive (slide %d, pop %d, flash %d)",
			a.SlideTicks, a.PopTicks, a.MergeFlashTicks)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// SpawnFourProbabilityFor returns how often 4s spawn at a difficulty.
func SpawnFourProbabilityFor(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.1
	case DifficultyHard:
		return 0.5
	default:
		return 0.3
	}
}

// ApplyDifficulty modifies the config based on a difficulty preset.
func ApplyDifficulty(cfg *T2048Config, preset DifficultyPreset) {
	cfg.Board.SpawnFourProbability = SpawnFourProbabilityFor(preset)
	if preset == DifficultyEasy && cfg.Board.InitialTiles < 2 && cfg.Board.Width*cfg.Board.Height >= 2 {
		cfg.Board.InitialTiles = 2
	}
}
