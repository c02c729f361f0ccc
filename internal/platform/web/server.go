// Package web serves 2048 sessions over HTTP and WebSocket.
//
// Routes:
//   - GET /health
//   - GET /api/presets
//   - GET /api/scores/{preset}
//   - GET, POST /api/sessions
//   - GET, DELETE /api/sessions/{id}
//   - POST /api/sessions/{id}/move
//   - GET /ws?preset=<id>&seed=<n> upgrades to a WebSocket that owns one session
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Config holds the web server settings.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// SessionTTL ends REST sessions that saw no move for this long.
	SessionTTL time.Duration

	// Origin is the allowed CORS and WebSocket origin. Empty allows any.
	Origin string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:    ":8080",
		SessionTTL: time.Hour,
	}
}

// Server bundles the router, live sessions and the optional score store.
type Server struct {
	cfg      Config
	r        *chi.Mux
	sessions *session.Manager
	store    *storage.Store
	logger   *log.Logger
}

// New constructs a Server and registers its routes. store may be nil.
func New(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-web",
		})
	}

	s := &Server{
		cfg:      cfg,
		r:        chi.NewRouter(),
		sessions: session.NewManager(),
		store:    store,
		logger:   logger,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.requestLogger)
	s.r.Use(s.cors)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.Len()})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/presets", s.handlePresets)
		r.Get("/scores/{preset}", s.handleScores)

		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/move", s.handleMove)
		})
	})

	s.r.Get("/ws", s.handleWS)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.r
}

// Sessions returns the live REST sessions.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.pruneLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// pruneLoop ends idle REST sessions once a minute.
func (s *Server) pruneLoop(ctx context.Context) {
	if s.cfg.SessionTTL <= 0 {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.sessions.Prune(now.Add(-s.cfg.SessionTTL)); n > 0 {
				s.logger.Info("pruned idle sessions", "count", n)
			}
		}
	}
}

// recordResult stores the final score of a finished session once.
func (s *Server) recordResult(sess *session.Session) {
	if s.store == nil || !sess.ClaimResult() {
		return
	}

	snap := sess.Snapshot()
	if _, err := s.store.SaveScore(sess.Preset.ID, snap.Score, snap.MaxTile()); err != nil {
		s.logger.Warn("could not save score", "session", sess.ID, "error", err)
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows browser clients from the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Origin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
