// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/ollama"
	"github.com/jeranaias/deepthink/internal/session"
	"github.com/jeranaias/deepthink/internal/ui/styles"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8501"

	// SessionCookie names the cookie that carries the browser's session ID.
	SessionCookie = "deepthink_session"

	// MaxRequestBodySize is the maximum size for a request body (1MB).
	MaxRequestBodySize = 1 * 1024 * 1024

	// healthCheckTimeout bounds the Ollama check in /health.
	healthCheckTimeout = 2 * time.Second
)

// ============================================================================
// SERVER
// ============================================================================

// Backend is the model server: completions plus the discovery calls used by
// /api/models and /health. *ollama.Client satisfies it.
type Backend interface {
	chat.Completer
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
	CheckRunning(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Addr     string
	Version  string
	Greeting string

	// Params are the model and temperature given to new sessions.
	Params chat.Params

	// Session configures idle expiry and the default theme.
	Session session.Config
}

// DefaultOptions returns options for a local server with stock defaults.
func DefaultOptions() Options {
	return Options{
		Addr:     DefaultAddr,
		Version:  "dev",
		Greeting: model.DefaultGreeting,
		Params:   chat.DefaultParams(),
		Session:  session.DefaultConfig(),
	}
}

// Server is the HTTP front end.
type Server struct {
	opts    Options
	router  *http.ServeMux
	server  *http.Server
	backend Backend
	invoker *chat.Invoker

	sessions *session.Registry
	stats    *ServerStats

	// sweeper lifetime
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	defaults chat.Params
}

// New creates a Server that sends completions to backend.
func New(opts Options, backend Backend) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Params.Validate() != nil {
		opts.Params = chat.DefaultParams()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		opts:     opts,
		router:   http.NewServeMux(),
		backend:  backend,
		invoker:  chat.NewInvoker(backend),
		stats:    NewServerStats(),
		ctx:      ctx,
		cancel:   cancel,
		defaults: opts.Params,
	}
	s.sessions = session.NewRegistry(opts.Session, s.newChat)

	s.setupRoutes()
	return s
}

// newChat builds the conversation for a new session from the current defaults.
func (s *Server) newChat() (*chat.Session, error) {
	s.mu.RLock()
	params := s.defaults
	s.mu.RUnlock()
	return chat.NewSession(s.invoker, s.opts.Greeting, params)
}

// SetDefaults changes the model, temperature and theme given to sessions
// created from now on. Live sessions keep their own settings.
func (s *Server) SetDefaults(params chat.Params, theme styles.Mode) error {
	if err := params.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.defaults = params
	s.mu.Unlock()
	s.sessions.SetTheme(theme)

	log.Printf("DEFAULTS_UPDATED | model=%s temperature=%.2f theme=%s", params.Model, params.Temperature, theme)
	return nil
}

// Defaults returns the parameters new sessions start with.
func (s *Server) Defaults() chat.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// Sessions returns the live session registry.
func (s *Server) Sessions() *session.Registry {
	return s.sessions
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Page
	s.router.HandleFunc("GET /{$}", s.handlePage)
	s.router.HandleFunc("POST /submit", s.handleSubmitForm)
	s.router.HandleFunc("POST /reset", s.handleResetForm)
	s.router.HandleFunc("POST /theme", s.handleThemeForm)
	s.router.HandleFunc("GET /export", s.handleExportPage)

	// API
	s.router.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.router.HandleFunc("GET /api/sessions/{id}", s.handleSessionStatus)
	s.router.HandleFunc("DELETE /api/sessions/{id}", s.handleEndSession)
	s.router.HandleFunc("GET /api/sessions/{id}/transcript", s.handleTranscript)
	s.router.HandleFunc("POST /api/sessions/{id}/messages", s.handleMessage)
	s.router.HandleFunc("POST /api/sessions/{id}/reset", s.handleResetSession)
	s.router.HandleFunc("GET /api/sessions/{id}/export", s.handleExportSession)
	s.router.HandleFunc("GET /api/models", s.handleModels)

	// Operations
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /stats", s.handleStats)
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(log.Default()),
		MaxBodyMiddleware(MaxRequestBodySize),
	)(s.router)
}

// ============================================================================
// HEALTH AND STATS HANDLERS
// ============================================================================

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	OllamaStatus string `json:"ollama_status"`
	Model        string `json:"model"`
	Sessions     int    `json:"sessions"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:   "ok",
		Version:  s.opts.Version,
		Model:    s.Defaults().Model,
		Sessions: s.sessions.Len(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()
	if err := s.backend.CheckRunning(ctx); err == nil {
		health.OllamaStatus = "ok"
	} else {
		health.OllamaStatus = "unavailable"
		health.Status = "degraded"
	}

	s.writeJSON(w, http.StatusOK, health)
}

// handleStats handles GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.stats.Snapshot(s.sessions.Len()))
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start starts the idle-session sweeper and the HTTP server. It blocks
// until the server stops and returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	go s.sessions.Run(s.ctx)

	s.server = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No WriteTimeout: a reply takes as long as the model takes.
	}

	log.Printf("SERVER_START | addr=%s version=%s model=%s", s.opts.Addr, s.opts.Version, s.Defaults().Model)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server and stops the sweeper.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.server == nil {
		return nil
	}

	log.Printf("SERVER_SHUTDOWN | sessions=%d", s.sessions.Len())
	return s.server.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"type":    code,
			"code":    status,
		},
	})
}
