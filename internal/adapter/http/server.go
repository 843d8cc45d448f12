package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/nclex-dashboard/internal/domain"
	"github.com/couchcryptid/nclex-dashboard/internal/pipeline"
	"github.com/couchcryptid/nclex-dashboard/internal/render"
)

// Dashboard renders one year of the pass-rate map.
type Dashboard interface {
	sharedobs.ReadinessChecker
	Years() []int
	DefaultYear() int
	Render(ctx context.Context, year int) (pipeline.View, error)
	PageData(v pipeline.View) render.PageData
}

// Server exposes the dashboard page, its JSON/PNG endpoints, and health,
// readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	dashboard  Dashboard
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the dashboard and /healthz, /readyz, /metrics routes.
func NewServer(addr string, dashboard Dashboard, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dashboard: dashboard,
		logger:    logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/years", s.handleYears)
	mux.HandleFunc("GET /api/figure", s.handleFigure)
	mux.HandleFunc("GET /api/regions", s.handleRegions)
	mux.HandleFunc("GET /chart.png", s.handleChart)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(dashboard))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	view, ok := s.render(w, r)
	if !ok {
		return
	}

	// Buffer so a template failure still yields a clean 500.
	var buf bytes.Buffer
	if err := render.Page(&buf, s.dashboard.PageData(view)); err != nil {
		s.fail(w, view.Year, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, yearsResponse{
		Years:   s.dashboard.Years(),
		Default: s.dashboard.DefaultYear(),
	})
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	view, ok := s.render(w, r)
	if !ok {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, view.Figure)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	view, ok := s.render(w, r)
	if !ok {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, newRegionsResponse(view))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	view, ok := s.render(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.BarChart(&buf, view.Year, view.Regions); err != nil {
		if errors.Is(err, render.ErrEmptyChart) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		s.fail(w, view.Year, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}

// render resolves the ?year= parameter and renders it, writing the error
// response itself when it returns false.
func (s *Server) render(w http.ResponseWriter, r *http.Request) (pipeline.View, bool) {
	year := s.dashboard.DefaultYear()
	if q := r.URL.Query().Get("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid year: "+q))
			return pipeline.View{}, false
		}
		year = y
	}

	view, err := s.dashboard.Render(r.Context(), year)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownYear) {
			writeError(w, http.StatusBadRequest, err)
			return pipeline.View{}, false
		}
		s.fail(w, year, err)
		return pipeline.View{}, false
	}
	return view, true
}

func (s *Server) fail(w http.ResponseWriter, year int, err error) {
	s.logger.Error("render failed", "year", year, "error", err)
	writeError(w, http.StatusInternalServerError, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
