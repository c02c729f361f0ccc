package main

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// loadGameConfig reads the YAML config, applies a difficulty and hands the
// result to the game package. An empty difficulty keeps the file's values.
func loadGameConfig(difficulty string) (config.T2048Config, error) {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return config.T2048Config{}, err
	}

	if difficulty != "" {
		preset, err := config.ParseDifficulty(difficulty)
		if err != nil {
			return config.T2048Config{}, err
		}
		config.ApplyDifficulty(&cfg, preset)
	}

	t2048.SetConfig(cfg)
	return cfg, nil
}

// mustLoadGameConfig is loadGameConfig for commands that cannot run without it.
func mustLoadGameConfig() config.T2048Config {
	cfg, err := loadGameConfig(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore opens the score database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// portOf returns the port of a host:port address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
