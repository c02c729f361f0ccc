package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const maxScores = 10

// presetView is the JSON shape of a preset.
type presetView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Ceiling int    `json:"ceiling"`
}

func newPresetView(p t2048.Preset) presetView {
	return presetView{
		ID:      p.ID,
		Name:    p.Name,
		Title:   p.Title,
		Width:   p.Width,
		Height:  p.Height,
		Ceiling: p.Ceiling,
	}
}

// sessionView is the JSON shape of a live session.
type sessionView struct {
	ID        string         `json:"id"`
	Preset    string         `json:"preset"`
	Seed      int64          `json:"seed"`
	Moves     int            `json:"moves"`
	GameOver  bool           `json:"game_over"`
	CreatedAt time.Time      `json:"created_at"`
	Snapshot  board.Snapshot `json:"snapshot"`
}

func newSessionView(s *session.Session) sessionView {
	return sessionView{
		ID:        s.ID,
		Preset:    s.Preset.Name,
		Seed:      s.Seed,
		Moves:     s.Moves(),
		GameOver:  s.GameOver(),
		CreatedAt: s.CreatedAt,
		Snapshot:  s.Snapshot(),
	}
}

// createSessionReq is the body of POST /api/sessions.
type createSessionReq struct {
	Preset string `json:"preset"`
	Seed   int64  `json:"seed"`
}

// moveReq is the body of POST /api/sessions/{id}/move.
type moveReq struct {
	Direction string `json:"direction"`
}

// moveRes wraps a full turn with the session it was played in.
type moveRes struct {
	SessionID string `json:"session_id"`
	session.Turn
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	views := make([]presetView, 0, len(t2048.Presets))
	for _, p := range t2048.Presets {
		views = append(views, newPresetView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	p, err := t2048.LookupPreset(chi.URLParam(r, "preset"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_preset")
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusOK, []storage.ScoreEntry{})
		return
	}

	limit := maxScores
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	scores, err := s.store.TopScores(p.ID, limit)
	if err != nil {
		s.logger.Error("load scores", "preset", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	list := s.sessions.List()
	views := make([]sessionView, 0, len(list))
	for _, sess := range list {
		views = append(views, newSessionView(sess))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	p, err := t2048.LookupPreset(req.Preset)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_preset")
		return
	}

	sess, err := s.sessions.Create(p.WithConfig(t2048.CurrentConfig()), req.Seed)
	if err != nil {
		s.logger.Error("create session", "preset", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}

	s.logger.Info("session created", "session", sess.ID, "preset", p.Name)
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, "session_not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	dir, err := board.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_direction")
		return
	}

	turn := sess.Play(dir)
	if turn.GameOver {
		s.recordResult(sess)
	}
	writeJSON(w, http.StatusOK, moveRes{SessionID: sess.ID, Turn: turn})
}

// lookup resolves the {id} URL parameter or writes a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if errors.Is(err, session.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup_failed")
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
