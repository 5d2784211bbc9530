package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/random-robbie/standing-data/internal/dataset"
)

// entityRoutes maps URL paths to the entity collection they serve.
// Paths match the original dataset publisher's API.
var entityRoutes = map[string]dataset.Entity{
	"/aircraft":              dataset.EntityAircraft,
	"/airlines":              dataset.EntityAirline,
	"/airports":              dataset.EntityAirport,
	"/routes":                dataset.EntityRoute,
	"/countries":             dataset.EntityCountry,
	"/model-types":           dataset.EntityModelType,
	"/code-blocks":           dataset.EntityCodeBlock,
	"/registration-prefixes": dataset.EntityRegistrationPrefix,
}

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Service descriptor
	r.Get("/", s.handleIndex)

	// Entity search endpoints
	for path, entity := range entityRoutes {
		r.Get(path, s.handleSearch(entity))
	}

	// Monitoring
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "unknown endpoint")
	})

	return r
}

// indexEntry describes one search endpoint in the service descriptor.
type indexEntry struct {
	Path       string   `json:"path"`
	Entity     string   `json:"entity"`
	Predicates []string `json:"predicates"`
}

// handleIndex returns a JSON descriptor of the service and its endpoints.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	paths := make([]string, 0, len(entityRoutes))
	for path := range entityRoutes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	endpoints := make([]indexEntry, 0, len(paths))
	for _, path := range paths {
		entity := entityRoutes[path]
		endpoints = append(endpoints, indexEntry{
			Path:       path,
			Entity:     string(entity),
			Predicates: dataset.PredicateNames(entity),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"service":   "standing-data",
		"version":   s.version,
		"endpoints": endpoints,
	})
}

// handleHealth reports service health based on dataset readability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.HealthCheck(r.Context()); err != nil {
		s.logger.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"dataset": s.store.Root(),
	})
}
