package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/web"
)

var (
	flagWebAddr    string
	flagWebOrigin  string
	flagSessionTTL time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP and WebSocket server",
	Long: `Start an HTTP server with a JSON API and a WebSocket endpoint.

Endpoints:
  GET    /health
  GET    /api/presets
  GET    /api/scores/{preset}
  GET    /api/sessions
  POST   /api/sessions               {"preset": "classic", "seed": 0}
  GET    /api/sessions/{id}
  DELETE /api/sessions/{id}
  POST   /api/sessions/{id}/move     {"direction": "left"}
  GET    /ws?preset=classic          WebSocket, one game per connection

WebSocket messages are JSON objects with a "type" of new, move, commit,
spawn, play or state. A browser can send move, animate, then commit and
spawn to finish the turn.

Examples:
  t2048 web
  t2048 web --addr :9000 --origin https://example.com`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagWebOrigin, "origin", "", "Allowed browser origin (empty allows any)")
	webCmd.Flags().DurationVar(&flagSessionTTL, "session-ttl", time.Hour, "End API sessions idle for this long")
}

func runWeb(_ *cobra.Command, _ []string) {
	mustLoadGameConfig()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.Origin = flagWebOrigin
	cfg.SessionTTL = flagSessionTTL

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting 2048 web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := web.New(cfg, store, nil).ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
