package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"atm-service/app/src/domain"
	"atm-service/app/src/infra"
)

// Server exposes the HTTP status transport for the simulation.
type Server struct {
	handler http.Handler
}

// NewServer constructs an HTTP server over the tower status snapshot.
func NewServer(status domain.StatusSource, aircraftCount int, logger *infra.Logger) *Server {
	router := chi.NewRouter()

	router.Use(infra.HTTPMiddleware(func(r *http.Request) string {
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				return pattern
			}
		}
		return r.URL.Path
	}))

	h := &handler{
		status:        status,
		aircraftCount: aircraftCount,
		logger:        logger,
		started:       time.Now(),
	}
	registerRoutes(router, h)

	return &Server{handler: router}
}

// Router returns the configured HTTP handler for reuse in tests or
// external HTTP servers.
func (s *Server) Router() http.Handler {
	return s.handler
}

// ServeHTTP allows Server to satisfy the http.Handler interface
// directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
