// Package preview serves rendered digest emails over HTTP for local design
// work: the sample digest, ad-hoc digests posted as JSON, and the theme
// tokens templates can reference.
package preview

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paperboy/internal/render"
)

// defaultRequestTimeout is the soft timeout applied to request contexts.
const defaultRequestTimeout = 10 * time.Second

// Config holds the parameters needed to construct a Server.
type Config struct {
	Renderer       *render.Renderer
	Logger         *slog.Logger
	FallbackHTML   string
	RequestTimeout time.Duration
	HealthProbes   []HealthProbe
}

// Server encapsulates the preview dependencies and router.
type Server struct {
	renderer     *render.Renderer
	logger       *slog.Logger
	fallbackHTML string
	timeout      time.Duration
	probes       []HealthProbe

	router *chi.Mux
}

// NewServer validates cfg and returns a Server with its routes mounted.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("renderer must not be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	s := &Server{
		renderer:     cfg.Renderer,
		logger:       cfg.Logger,
		fallbackHTML: cfg.FallbackHTML,
		timeout:      timeout,
		probes:       cfg.HealthProbes,
		router:       chi.NewRouter(),
	}
	s.mountRoutes()
	return s, nil
}

// Handler returns the http.Handler for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// mountRoutes registers the middleware chain and endpoints.
//
// Middleware order:
//  1. Recoverer       - outermost, catches every panic.
//  2. ContextTimeout  - soft deadline for each request.
//  3. RequestID       - correlation ID for logs.
//  4. SecurityHeaders - present on every response, errors included.
//  5. RequestLogger   - structured access log.
func (s *Server) mountRoutes() {
	s.router.Use(s.Recoverer)
	s.router.Use(ContextTimeoutMiddleware(s.timeout))
	s.router.Use(RequestIDMiddleware)
	s.router.Use(SecurityHeadersMiddleware)
	s.router.Use(RequestLogger(s.logger))

	s.router.Get("/healthz", s.HandleHealth)
	s.router.Get("/preview", s.HandlePreview)
	s.router.Post("/render", s.HandleRender)
	s.router.Get("/theme", s.HandleTheme)
}
