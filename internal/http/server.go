// Package http exposes the portfolio over a JSON API: instrument CRUD and
// export, scenario projections and monthly budget reports.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"nestegg/internal/core"
	"nestegg/internal/services"
)

// SnapshotLoader serves the worker-maintained baseline timeline.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, key string) ([]core.ProjectionPoint, time.Time, error)
}

type Server struct {
	http.Server

	instruments *services.InstrumentService
	projections *services.ProjectionService
	budgets     *services.BudgetService
	snapshots   SnapshotLoader

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
// budgets and snapshots may be nil; the corresponding endpoints then answer
// 503.
func NewServer(addr string, instruments *services.InstrumentService, projections *services.ProjectionService, budgets *services.BudgetService, snapshots SnapshotLoader) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		instruments: instruments,
		projections: projections,
		budgets:     budgets,
		snapshots:   snapshots,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /instruments", s.withSecurityHeaders(s.handleListInstruments))
	mux.HandleFunc("POST /instruments", s.withSecurityHeaders(s.handleCreateInstrument))
	mux.HandleFunc("GET /instruments/export", s.withSecurityHeaders(s.handleExportInstruments))
	mux.HandleFunc("GET /instruments/{id}", s.withSecurityHeaders(s.handleGetInstrument))
	mux.HandleFunc("PUT /instruments/{id}", s.withSecurityHeaders(s.handleUpdateInstrument))
	mux.HandleFunc("DELETE /instruments/{id}", s.withSecurityHeaders(s.handleDeleteInstrument))

	mux.HandleFunc("GET /projection", s.withSecurityHeaders(s.handleProjection))
	mux.HandleFunc("GET /projection/snapshot", s.withSecurityHeaders(s.handleProjectionSnapshot))
	mux.HandleFunc("GET /budget-report", s.withSecurityHeaders(s.handleBudgetReport))

	return s
}

// Shutdown gracefully shuts down the server and the rate limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Mutating requests are rate limited per client.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
