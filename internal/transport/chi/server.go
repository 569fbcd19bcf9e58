// Package chi exposes the star map pipeline over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/units"
	svgrender "github.com/astrovis/starfield/internal/render/svg"
	starmapuc "github.com/astrovis/starfield/internal/usecase/starmap"
)

// Server handles the star map HTTP API.
type Server struct {
	starmap  *starmapuc.Service
	renderer *svgrender.Renderer
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(starmap *starmapuc.Service, renderer *svgrender.Renderer, logger *zap.Logger) *Server {
	return &Server{starmap: starmap, renderer: renderer, logger: logger}
}

// Routes registers the API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/v1/starmap", s.GetStarmap)
	r.Get("/v1/stars", s.GetStars)
	r.Get("/healthz", s.Healthz)
}

// GetStarmap handles GET /v1/starmap?distance=<v>&unit=<u> and responds
// with a rendered SVG. Either a complete map is rendered or nothing is:
// an empty sample produces a JSON notice, never a partial image.
func (s *Server) GetStarmap(w http.ResponseWriter, r *http.Request) {
	m, ok := s.buildMap(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := s.renderer.Render(w, m); err != nil {
		// Headers are gone; all we can do is log.
		s.logger.Error("render starmap", zap.Error(err))
	}
}

// GetStars handles GET /v1/stars?distance=<v>&unit=<u> and responds with
// the projected point set as JSON, for clients that render themselves.
func (s *Server) GetStars(w http.ResponseWriter, r *http.Request) {
	m, ok := s.buildMap(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Healthz reports liveness.
func (s *Server) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// buildMap parses the distance parameters, runs the pipeline, and writes
// the error response when anything short-circuits. The bool reports
// whether a complete map was produced.
func (s *Server) buildMap(w http.ResponseWriter, r *http.Request) (*domain.StarMap, bool) {
	q := r.URL.Query()
	unit := q.Get("unit")
	if unit == "" {
		unit = string(units.LightYear)
	}

	d, err := units.Parse(q.Get("distance"), unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_distance", err.Error())
		return nil, false
	}

	m, err := s.starmap.Build(r.Context(), d)
	if err != nil {
		s.writeDomainError(w, err)
		return nil, false
	}
	return m, true
}

// writeDomainError maps pipeline errors onto HTTP responses. An empty
// sample is a valid terminal state and answers 200 with a notice.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptySample):
		writeJSON(w, http.StatusOK, map[string]string{
			"code":    "empty_sample",
			"message": "no nearby stars found within the specified distance",
		})
	case errors.Is(err, domain.ErrInvalidDistance):
		writeError(w, http.StatusBadRequest, "invalid_distance", err.Error())
	case errors.Is(err, domain.ErrQuerySyntax):
		writeError(w, http.StatusBadRequest, "query_syntax_error", err.Error())
	case errors.Is(err, domain.ErrCatalogUnavailable):
		writeError(w, http.StatusBadGateway, "catalog_unavailable", err.Error())
	default:
		s.logger.Error("starmap pipeline failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
