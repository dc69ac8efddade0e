// Package web serves the quote generator page and a small JSON API.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abdulachik/quotator/internal/cache"
	"github.com/abdulachik/quotator/internal/quotator"
	"github.com/abdulachik/quotator/internal/scheduler"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// StatusSource reports the state of the quote cache.
// *cache.Cache satisfies it.
type StatusSource interface {
	Status() cache.Status
	Sources() []string
	Counts() map[string]int
}

// Server handles HTTP requests.
type Server struct {
	quotator      *quotator.Quotator
	cache         StatusSource
	health        *scheduler.Health
	defaultSource string
	maxAmount     int
	autoUpdate    time.Duration
}

// Config holds server configuration.
type Config struct {
	Quotator      *quotator.Quotator
	Cache         StatusSource
	Health        *scheduler.Health
	DefaultSource string
	MaxAmount     int
	AutoUpdate    time.Duration
}

// New creates a Server.
func New(cfg Config) *Server {
	maxAmount := cfg.MaxAmount
	if maxAmount < 1 {
		maxAmount = 5
	}

	autoUpdate := cfg.AutoUpdate
	if autoUpdate < time.Second {
		autoUpdate = 10 * time.Second
	}

	health := cfg.Health
	if health == nil {
		health = scheduler.NewHealth()
	}

	return &Server{
		quotator:      cfg.Quotator,
		cache:         cfg.Cache,
		health:        health,
		defaultSource: cfg.DefaultSource,
		maxAmount:     maxAmount,
		autoUpdate:    autoUpdate,
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/quotes", s.handleQuotes)
		r.Get("/status", s.handleStatus)
	})

	return r
}

// requestLogger logs each request through slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
