package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Width:                4,
			Height:               4,
			MergeCeiling:         2048,
			SpawnFourProbability: 0.3,
			InitialTiles:         1,
		},
		Animation: AnimationConfig{
			SlideTicks:      8, // ~133ms at 60fps
			PopTicks:        6,
			MergeFlashTicks: 10,
		},
	}
}

// DefaultYAML returns the embedded default config file, a starting point
// for custom boards.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
