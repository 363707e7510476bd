// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jeranaias/budgetchat-tui/internal/logging"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// HealthText is the body of GET /api/health.
	HealthText = "Budget Chat Client is running!"

	// ClearedText is the confirmation returned by DELETE /api/chat/memory.
	ClearedText = "Chat memory cleared successfully"

	// MaxRequestBodySize bounds POST bodies.
	MaxRequestBodySize = 64 * 1024

	// MaxMemoryRecords bounds the conversation memory.
	MaxMemoryRecords = 200
)

// ============================================================================
// SERVER
// ============================================================================

// Config configures a Server.
type Config struct {
	// Addr is the listen address (default ":8080")
	Addr string

	// RateLimit is requests per second per client IP; zero disables limiting
	RateLimit float64

	// Burst is the limiter bucket size
	Burst int

	// Logger receives request logs (nil = no logging)
	Logger *zap.SugaredLogger

	// Now is the clock used for dates (default: time.Now)
	Now func() time.Time
}

// Server is the mock budget backend.
type Server struct {
	addr      string
	log       *zap.SugaredLogger
	ledger    *Ledger
	memory    *Memory
	assistant *Assistant
	limiter   *RateLimiter
	router    chi.Router
	server    *http.Server
}

// New creates a Server with an empty ledger.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ledger := NewLedger()
	s := &Server{
		addr:      cfg.Addr,
		log:       logging.OrNop(cfg.Logger),
		ledger:    ledger,
		memory:    NewMemory(MaxMemoryRecords),
		assistant: NewAssistant(ledger, cfg.Now),
	}
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, cfg.Burst)
	}
	s.setupRoutes()
	return s
}

// Ledger exposes the backing ledger (for seeding in tests and demos).
func (s *Server) Ledger() *Ledger {
	return s.ledger
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(RecoveryMiddleware(s.log))
	r.Use(LoggingMiddleware(s.log))
	r.Use(CORSMiddleware("*"))
	if s.limiter != nil {
		r.Use(s.limiter.Middleware(s.log))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat/message", s.handleChatMessage)
		r.Get("/chat/history", s.handleChatHistory)
		r.Delete("/chat/memory", s.handleClearMemory)
		r.Get("/transactions/totals/{year}/{month}", s.handleTotals)
		r.Get("/health", s.handleHealth)
		r.Get("/mcp/status", s.handleMCPStatus)
	})

	s.router = r
}

// ============================================================================
// HANDLERS
// ============================================================================

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request: "+err.Error()))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request: message must not be blank"))
		return
	}

	reply := s.assistant.Reply(req.Message)
	s.memory.Append(req.Message, reply)

	s.log.Debugw("chat message handled", "message_len", len(req.Message), "reply_len", len(reply))
	s.writeJSON(w, http.StatusOK, chatResponse{
		Role:      "assistant",
		Content:   reply,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.memory.Records())
}

func (s *Server) handleClearMemory(w http.ResponseWriter, r *http.Request) {
	s.memory.Clear()
	s.writeJSON(w, http.StatusOK, map[string]string{"message": ClearedText})
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	if yerr != nil || merr != nil || month < 1 || month > 12 || year < 1 {
		s.log.Warnw("invalid totals period", "year", chi.URLParam(r, "year"), "month", chi.URLParam(r, "month"))
		s.writeJSON(w, http.StatusBadRequest, Totals{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.ledger.Totals(year, month))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, HealthText)
}

func (s *Server) handleMCPStatus(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "MCP Tools Available: true")
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("mock backend listening", "addr", ln.Addr().String())
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Infow("mock backend shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

// errorResponse mirrors the backend's error reply: an assistant message
// prefixed with a cross mark.
func errorResponse(message string) chatResponse {
	return chatResponse{
		Role:      "assistant",
		Content:   "❌ " + message,
		Timestamp: time.Now().UnixMilli(),
	}
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warnw("response encode failed", "error", err)
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
