package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muffinboard/internal/models"
	"github.com/desertthunder/muffinboard/internal/shared"
	"golang.org/x/time/rate"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, authentication, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers served by the receiver.
// Implementations handle a group of endpoints.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the "METHOD /path" patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                      // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler)  // Handle registers a handler for the specified method and path
	Handler(handler Handler, middleware ...Middleware) // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request)  // ServeHTTP implements http.Handler for the entire router
}

// EventStore persists received webhook events.
type EventStore interface {
	Create(event *models.WebhookEvent) error
}

// Server is the webhook receiver.
type Server struct {
	router *BasicRouter
	http   *http.Server
	logger *log.Logger
}

// New assembles the webhook receiver described by config.
func New(config shared.WebhookConfig, store EventStore, logger *log.Logger) *Server {
	router := NewBasicRouter()
	router.Use(RequestID(), Logging(logger))
	if config.RateLimit > 0 {
		burst := max(int(config.RateLimit), 1)
		router.Use(RateLimit(rate.NewLimiter(rate.Limit(config.RateLimit), burst)))
	}

	router.Handle(http.MethodGet, "/health", http.HandlerFunc(handleHealth))

	var guards []Middleware
	if config.Token != "" {
		guards = append(guards, TokenAuth(config.Token))
	}
	router.Handler(NewWebhookHandler(store, logger), guards...)

	return &Server{
		router: router,
		logger: logger,
		http: &http.Server{
			Addr:              config.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.http.Addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("webhook receiver listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("webhook receiver failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down webhook receiver")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down webhook receiver: %w", err)
	}
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
