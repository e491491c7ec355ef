// Package api serves read-only snapshots of saved games over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/engine"
	"github.com/talgya/narcosim/internal/persistence"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

// Store is the slice of persistence the API reads from.
type Store interface {
	ListGames() ([]persistence.GameSummary, error)
	GetGame(id string) (persistence.GameSummary, error)
	LoadGame(id string, cfg config.Config, logger *slog.Logger) (*engine.Game, error)
	RecentJournal(id string, limit int) ([]persistence.JournalEntry, error)
}

// Options tune the server.
type Options struct {
	RequestTimeout time.Duration
	RateLimit      int           // requests per window per client, 0 disables
	RateWindow     time.Duration // defaults to a minute
}

// Server serves game state over HTTP.
type Server struct {
	store Store
	cfg   config.Config
	log   *slog.Logger
	opts  Options
	mux   *chi.Mux
}

// New builds a server reading games from store under cfg.
func New(store Store, cfg config.Config, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}
	s := &Server{
		store: store,
		cfg:   cfg,
		log:   logger,
		opts:  opts,
		mux:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(NewRateLimiter(s.opts.RateLimit, s.opts.RateWindow).Middleware)
		}
		r.Get("/games", s.handleGames)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGame)
			r.Get("/regions", s.handleRegions)
			r.Get("/regions/{region}", s.handleRegion)
			r.Get("/events", s.handleEvents)
			r.Get("/journal", s.handleJournal)
		})
	})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("http api starting", "addr", addr, "rate_limit", s.opts.RateLimit)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http api stopping")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	games, err := s.store.ListGames()
	if err != nil {
		s.fail(w, err)
		return
	}
	if games == nil {
		games = []persistence.GameSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

// loadGame restores the game named in the URL, writing the error response
// itself when that fails.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (*engine.Game, bool) {
	g, err := s.store.LoadGame(chi.URLParam(r, "id"), s.cfg, s.log)
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return g, true
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	summary, err := s.store.GetGame(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game":     summary,
		"snapshot": g.Snapshot(),
		"debts":    g.Debts(),
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"regions": g.Regions()})
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	v, err := g.RegionView(chi.URLParam(r, "region"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	events := g.ActiveEvents()
	if events == nil {
		events = []engine.EventView{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": g.State.Day, "events": events})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.GetGame(id); err != nil {
		s.fail(w, err)
		return
	}
	limit := defaultJournalLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxJournalLimit)
	}
	entries, err := s.store.RecentJournal(id, limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if entries == nil {
		entries = []persistence.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, persistence.ErrGameNotFound), errors.Is(err, engine.ErrUnknownRegion):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("api request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
