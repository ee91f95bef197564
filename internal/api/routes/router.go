package routes

import (
	"net/http"

	"github.com/adityakhanna/shopwise/internal/api/handlers"
	"github.com/adityakhanna/shopwise/internal/api/middleware"
	"github.com/adityakhanna/shopwise/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	queryHandler  *handlers.QueryHandler
	browseHandler *handlers.BrowseHandler
	statsHandler  *handlers.StatsHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	queryHandler *handlers.QueryHandler,
	browseHandler *handlers.BrowseHandler,
	statsHandler *handlers.StatsHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		queryHandler:  queryHandler,
		browseHandler: browseHandler,
		statsHandler:  statsHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Query endpoint
	r.mux.HandleFunc("POST /api/query", r.queryHandler.AskQuery)

	// Catalog browse endpoints
	r.mux.HandleFunc("GET /api/brands", r.browseHandler.ListBrands)
	r.mux.HandleFunc("GET /api/categories", r.browseHandler.ListCategories)
	r.mux.HandleFunc("GET /api/products", r.browseHandler.ListProducts)
	r.mux.HandleFunc("GET /api/products/top-rated", r.browseHandler.GetTopRated)
	r.mux.HandleFunc("GET /api/products/{id}", r.browseHandler.GetProduct)
	r.mux.HandleFunc("GET /api/products/{id}/similar", r.browseHandler.GetSimilarProducts)

	// Analytics endpoint
	if r.statsHandler != nil {
		r.mux.HandleFunc("GET /api/stats/queries", r.statsHandler.GetStats)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so every response carries the headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
