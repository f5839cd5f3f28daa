package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/MikeSquared-Agency/loki/internal/config"
	"github.com/MikeSquared-Agency/loki/internal/engine"
	"github.com/MikeSquared-Agency/loki/internal/store"
)

type Server struct {
	router          *chi.Mux
	port            int
	engine          *engine.Engine
	archive         *store.Store
	maxMessageChars int
}

func NewServer(cfg config.Config, eng *engine.Engine, archive *store.Store) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:          router,
		port:            cfg.Port,
		engine:          eng,
		archive:         archive,
		maxMessageChars: cfg.MaxMessageChars,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/loki/status", s.status)

	router.Group(func(r chi.Router) {
		if cfg.RateLimitEnabled {
			r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
		}
		r.Use(apiKeyAuth(cfg.APIKey))
		r.Post("/api/v1/honeypot", s.honeypot)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"agent":  "loki",
		"status": "active",
	}
	if s.archive != nil {
		if sum, err := s.archive.Summarize(r.Context()); err == nil {
			body["archive"] = sum
		} else {
			slog.Warn("failed to summarize archive", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, body)
}

// errorBody is the JSON error envelope for every non-2xx response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, errName, message string) {
	writeJSON(w, status, errorBody{Error: errName, Message: message})
}
