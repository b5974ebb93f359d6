// Package devserver is an in-memory implementation of the /car REST API
// for local development and tests.
package devserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/studiowebux/carcli/internal/logging"
)

// DefaultPageSize matches the page size the list endpoint has always used
const DefaultPageSize = 5

// maxLogs bounds the request log
const maxLogs = 1000

// Config holds dev server settings
type Config struct {
	Addr    string        // Listen address (default ":8080")
	Latency time.Duration // Artificial delay added to every response
}

// RequestLog represents a handled request
type RequestLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Query     string        `json:"query"`
	Status    int           `json:"status"`
	Duration  time.Duration `json:"duration"`
}

// Server serves a Store over HTTP
type Server struct {
	config     Config
	store      *Store
	log        *slog.Logger
	httpServer *http.Server

	logsMutex sync.RWMutex
	logs      []RequestLog
}

// NewServer creates a server for store
func NewServer(config Config, store *Store, log *slog.Logger) *Server {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if log == nil {
		log = logging.Nop()
	}

	s := &Server{
		config: config,
		store:  store,
		log:    log,
		logs:   make([]RequestLog, 0),
	}
	s.httpServer = &http.Server{
		Addr:              config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed API handler
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logMiddleware)
	if s.config.Latency > 0 {
		r.Use(s.latencyMiddleware)
	}

	r.HandleFunc("/car", s.listCars).Methods(http.MethodGet)
	r.HandleFunc("/car", s.createCar).Methods(http.MethodPost)
	r.HandleFunc("/car/{id}", s.getCar).Methods(http.MethodGet)
	r.HandleFunc("/car/{id}", s.updateCar).Methods(http.MethodPut)
	r.HandleFunc("/car/{id}", s.deleteCar).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no route for "+r.Method+" "+r.URL.Path, nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})
	return r
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.config.Addr
}

// ListenAndServe blocks until the server stops; a clean shutdown returns nil
func (s *Server) ListenAndServe() error {
	s.log.Info("dev server listening", "addr", s.config.Addr, "cars", s.store.Len(), "page_size", s.store.PageSize())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(l net.Listener) error {
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// statusRecorder captures the status written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		duration := time.Since(start)

		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery, "status", rec.status, "duration_ms", duration.Milliseconds())
		s.logRequest(RequestLog{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			Status:    rec.status,
			Duration:  duration,
		})
	})
}

func (s *Server) latencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(s.config.Latency):
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logRequest adds a request to the log
func (s *Server) logRequest(entry RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// ClearLogs clears all logged requests
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]RequestLog, 0)
}
