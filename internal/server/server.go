// Package server serves rendered Sierpinski views over HTTP.
//
// Routes:
//
//	GET /healthz                              liveness probe
//	GET /render.png?width&height&zoom&x&y     PNG of the requested view
//	GET /api/stats?width&height&zoom&x&y      render statistics as JSON
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/gg"
	"github.com/gogpu/sierpinski"
	"github.com/gogpu/sierpinski/integration/ggsurface"
)

// Request size defaults.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	MaxDimension  = 4096
)

var errBadQuery = errors.New("bad query")

// Server renders views on request. It is safe for concurrent use; every
// request builds its own view and surface.
type Server struct {
	cfg      sierpinski.Config
	renderer *sierpinski.Renderer
}

// New creates a server rendering with cfg.
func New(cfg sierpinski.Config) *Server {
	return &Server{
		cfg:      cfg,
		renderer: sierpinski.NewRenderer(sierpinski.WithConfig(cfg)),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/render.png", s.renderPNG)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.stats)
	})

	return r
}

// viewRequest is a parsed render query.
type viewRequest struct {
	width, height int
	zoom          float64
	origin        gg.Point
}

func (q viewRequest) viewport() sierpinski.Viewport {
	return sierpinski.Viewport{Width: float64(q.width), Height: float64(q.height)}
}

func (s *Server) parseQuery(v url.Values) (viewRequest, error) {
	q := viewRequest{width: DefaultWidth, height: DefaultHeight, zoom: 1}

	dims := []struct {
		key string
		dst *int
	}{{"width", &q.width}, {"height", &q.height}}
	for _, d := range dims {
		raw := v.Get(d.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxDimension {
			return q, fmt.Errorf("%w: %s must be an integer in [1, %d]", errBadQuery, d.key, MaxDimension)
		}
		*d.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{{"zoom", &q.zoom}, {"x", &q.origin.X}, {"y", &q.origin.Y}}
	for _, f := range floats {
		raw := v.Get(f.key)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return q, fmt.Errorf("%w: %s must be a finite number", errBadQuery, f.key)
		}
		*f.dst = n
	}
	if q.zoom < 1 || q.zoom > s.cfg.MaxZoom {
		return q, fmt.Errorf("%w: zoom must be in [1, %g]", errBadQuery, s.cfg.MaxZoom)
	}
	return q, nil
}

func (s *Server) view(q viewRequest) *sierpinski.ViewState {
	v := sierpinski.NewViewState(sierpinski.WithConfig(s.cfg))
	v.SetView(q.zoom, q.origin)
	return v
}

// renderPNG handles GET /render.png.
func (s *Server) renderPNG(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dc := gg.NewContext(q.width, q.height)
	defer func() { _ = dc.Close() }()

	rs, err := s.renderer.Render(ggsurface.NewContext(dc), q.viewport(), s.view(q))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Triangles", strconv.Itoa(rs.Triangles))
	w.Header().Set("X-Render-Duration", rs.Duration.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Zoom       float64 `json:"zoom"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Triangles  int     `json:"triangles"`
	Culled     int     `json:"culled"`
	MaxDepth   int     `json:"max_depth"`
	Commands   int     `json:"commands"`
	DurationMS float64 `json:"duration_ms"`
}

// stats handles GET /api/stats. The pass is recorded rather than
// rasterized.
func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := ggsurface.NewRecorder(q.width, q.height)
	rs, err := s.renderer.Render(rec, q.viewport(), s.view(q))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	recording := rec.Finish()

	respondJSON(w, http.StatusOK, StatsResponse{
		Width:      q.width,
		Height:     q.height,
		Zoom:       q.zoom,
		X:          q.origin.X,
		Y:          q.origin.Y,
		Triangles:  rs.Triangles,
		Culled:     rs.Culled,
		MaxDepth:   rs.MaxDepth,
		Commands:   len(recording.Commands()),
		DurationMS: float64(rs.Duration) / float64(time.Millisecond),
	})
}

// requestLogger logs each request through the package logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		sierpinski.Logger().Info("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		sierpinski.Logger().Warn("encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
