package handlers

import (
	"net/http"

	"github.com/adityakhanna/shopwise/internal/application/services"
)

// StatsService exposes the analytics tallies.
type StatsService interface {
	Stats() services.QueryStats
}

// StatsHandler serves the query analytics endpoint.
type StatsHandler struct {
	service StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(service StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats handles GET /api/stats/queries
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Stats())
}
