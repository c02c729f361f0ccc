// Package mcp exposes 2048 sessions as Model Context Protocol tools, so an
// agent can play through new_game, move, game_state, list_presets and end_game.
package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const instructions = `2048 - MCP Interface

Slide numbered tiles on a grid. Equal neighbours merge into their sum, and
after every move that changes the board a new 2 or 4 appears. The game ends
when no move can change the board. Each merge adds to the score, which is the
sum of all tiles.

AVAILABLE TOOLS:
- list_presets: Board sizes you can play
- new_game: Start a game and get its session_id
- move: Play one turn (up/down/left/right)
- game_state: Show the board of a session
- end_game: Finish a session`

// Server holds the MCP server and the sessions it plays.
type Server struct {
	mcpServer *server.MCPServer
	sessions  *session.Manager
	store     *storage.Store
	logger    *log.Logger
}

// New creates the tool server. store may be nil; logs go to stderr since
// stdout carries the protocol.
func New(version string, store *storage.Store) *Server {
	s := &Server{
		sessions: session.NewManager(),
		store:    store,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-mcp",
		}),
	}

	s.mcpServer = server.NewMCPServer(
		"2048",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin and stdout until EOF.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_presets",
		Description: "List the board presets that new_game accepts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListPresets)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game and return its session id and board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"preset": map[string]interface{}{
					"type":        "string",
					"description": "Preset name (default classic)",
					"enum":        t2048.PresetNames(),
				},
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "Random seed for a reproducible game (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide all tiles in a direction and play out the turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to move",
					"enum":        []string{"up", "down", "left", "right"},
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Show the current board, score and status of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "end_game",
		Description: "Finish a session and record its score",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleEndGame)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func (s *Server) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, p := range t2048.Presets {
		p = p.WithConfig(t2048.CurrentConfig())
		fmt.Fprintf(&b, "%-9s %dx%d, merges below %d\n", p.Name, p.Width, p.Height, p.Ceiling)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	name, _ := args["preset"].(string)
	seed, _ := args["seed"].(float64)

	p, err := t2048.LookupPreset(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess, err := s.sessions.Create(p.WithConfig(t2048.CurrentConfig()), int64(seed))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Info("game started", "session", sess.ID, "preset", p.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "session_id: %s\npreset: %s\n\n", sess.ID, p)
	writeState(&b, sess)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	sess, err := s.sessions.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dir, err := board.ParseDirection(direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	turn := sess.Play(dir)
	if turn.GameOver {
		s.recordResult(sess)
	}
	return mcp.NewToolResultText(formatTurn(dir, turn, sess)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := arguments(request)["session_id"].(string)

	sess, err := s.sessions.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	writeState(&b, sess)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := arguments(request)["session_id"].(string)

	sess, err := s.sessions.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.sessions.Delete(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.recordResult(sess)
	snap := sess.Snapshot()
	s.logger.Info("game ended", "session", id, "score", snap.Score, "moves", sess.Moves())
	return mcp.NewToolResultText(fmt.Sprintf("Game %s ended. Final score %d, max tile %d, %d moves.",
		id, snap.Score, snap.MaxTile(), sess.Moves())), nil
}

// recordResult stores a finished or abandoned game once. Abandoned games
// with no moves are not scores.
func (s *Server) recordResult(sess *session.Session) {
	if s.store == nil {
		return
	}
	if !sess.GameOver() && sess.Moves() == 0 {
		return
	}
	if sess.GameOver() && !sess.ClaimResult() {
		return
	}

	snap := sess.Snapshot()
	if _, err := s.store.SaveScore(sess.Preset.ID, snap.Score, snap.MaxTile()); err != nil {
		s.logger.Warn("could not save score", "session", sess.ID, "error", err)
	}
}
