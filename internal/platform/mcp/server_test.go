package mcp

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h toolHandler, name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := h(context.Background(), request)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("%s returned no content", name)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("%s returned %T, want text", name, result.Content[0])
	}
	return text.Text, result.IsError
}

var sessionIDPattern = regexp.MustCompile(`session_id: (\S+)`)

func newGame(t *testing.T, s *Server, preset string, seed float64) string {
	t.Helper()
	text, isErr := call(t, s.handleNewGame, "new_game", map[string]interface{}{"preset": preset, "seed": seed})
	if isErr {
		t.Fatalf("new_game error: %s", text)
	}
	m := sessionIDPattern.FindStringSubmatch(text)
	if m == nil {
		t.Fatalf("no session id in %q", text)
	}
	return m[1]
}

func TestNewServer(t *testing.T) {
	s := New("test", nil)
	if s.MCPServer() == nil {
		t.Fatal("MCP server should be initialized")
	}
	if s.sessions == nil {
		t.Error("session manager should be initialized")
	}
}

func TestListPresets(t *testing.T) {
	s := New("test", nil)

	text, isErr := call(t, s.handleListPresets, "list_presets", map[string]interface{}{})
	if isErr {
		t.Fatalf("list_presets error: %s", text)
	}
	for _, name := range []string{"classic", "original", "small", "large", "tiny"} {
		if !strings.Contains(text, name) {
			t.Errorf("preset %s missing from %q", name, text)
		}
	}
}

func TestNewGameShowsBoard(t *testing.T) {
	s := New("test", nil)
	id := newGame(t, s, "small", 3)

	sess, err := s.sessions.Get(id)
	if err != nil {
		t.Fatalf("session not registered: %v", err)
	}
	if sess.Preset.Width != 3 {
		t.Errorf("width = %d, want 3", sess.Preset.Width)
	}

	text, _ := call(t, s.handleGameState, "game_state", map[string]interface{}{"session_id": id})
	if strings.Count(text, "\n") < 5 {
		t.Errorf("state should show a 3-row grid:\n%s", text)
	}
	if !strings.Contains(text, "Score:") {
		t.Errorf("state lacks the score:\n%s", text)
	}
}

func TestNewGameUnknownPreset(t *testing.T) {
	s := New("test", nil)

	text, isErr := call(t, s.handleNewGame, "new_game", map[string]interface{}{"preset": "huge"})
	if !isErr {
		t.Errorf("unknown preset should fail, got %q", text)
	}
}

func TestMove(t *testing.T) {
	s := New("test", nil)
	id := newGame(t, s, "classic", 11)

	moved := false
	for _, dir := range []string{"left", "right", "up", "down"} {
		text, isErr := call(t, s.handleMove, "move", map[string]interface{}{"session_id": id, "direction": dir})
		if isErr {
			t.Fatalf("move %s error: %s", dir, text)
		}
		if strings.HasPrefix(text, "Moved "+dir) {
			moved = true
			if !strings.Contains(text, "New ") {
				t.Errorf("moved turn should report the new tile:\n%s", text)
			}
		}
	}
	if !moved {
		t.Error("no direction moved the board")
	}
}

func TestMoveErrors(t *testing.T) {
	s := New("test", nil)
	id := newGame(t, s, "", 1)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"unknown session", map[string]interface{}{"session_id": "nope", "direction": "left"}},
		{"bad direction", map[string]interface{}{"session_id": id, "direction": "sideways"}},
		{"no arguments", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if text, isErr := call(t, s.handleMove, "move", tt.args); !isErr {
				t.Errorf("want error, got %q", text)
			}
		})
	}
}

func TestEndGameRecordsScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	s := New("test", store)
	id := newGame(t, s, "classic", 5)
	for _, dir := range []string{"left", "up", "right", "down"} {
		call(t, s.handleMove, "move", map[string]interface{}{"session_id": id, "direction": dir})
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	text, isErr := call(t, s.handleEndGame, "end_game", map[string]interface{}{"session_id": id})
	if isErr {
		t.Fatalf("end_game error: %s", text)
	}
	if _, err := s.sessions.Get(id); err == nil {
		t.Error("session should be gone after end_game")
	}

	scores, err := store.AllScores("2048")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	wantScores := 0
	if sess.Moves() > 0 {
		wantScores = 1
	}
	if len(scores) != wantScores {
		t.Errorf("stored %d scores, want %d", len(scores), wantScores)
	}

	if _, isErr := call(t, s.handleEndGame, "end_game", map[string]interface{}{"session_id": id}); !isErr {
		t.Error("ending twice should fail")
	}
}

func TestFormatGrid(t *testing.T) {
	b, err := board.FromValues(3, 2, []int{2, 0, 128, 0, 16, 0})
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}

	got := formatGrid(b.Snapshot())
	want := "  2   . 128\n  .  16   .\n"
	if got != want {
		t.Errorf("formatGrid =\n%q\nwant\n%q", got, want)
	}
}
