package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

const maxQueryLength = 500

// QueryService defines the pipeline operation used by the handler.
type QueryService interface {
	Process(ctx context.Context, query, sessionID string) *entities.Trace
}

// QueryHandler handles natural-language shopping queries.
type QueryHandler struct {
	service QueryService
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(service QueryService) *QueryHandler {
	return &QueryHandler{service: service}
}

type queryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

type queryResponse struct {
	SessionID   string              `json:"session_id"`
	Intent      entities.IntentType `json:"intent"`
	FinalAnswer string              `json:"final_answer"`
	Steps       []string            `json:"steps"`
	AgentsUsed  []string            `json:"agents_used"`
	Success     bool                `json:"success"`
}

// AskQuery handles POST /api/query
func (h *QueryHandler) AskQuery(w http.ResponseWriter, r *http.Request) {
	var payload queryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Query = strings.TrimSpace(payload.Query)
	if payload.Query == "" {
		respondWithError(w, http.StatusBadRequest, "query is required")
		return
	}
	if len(payload.Query) > maxQueryLength {
		respondWithError(w, http.StatusBadRequest, "query is too long")
		return
	}

	trace := h.service.Process(r.Context(), payload.Query, payload.SessionID)

	respondWithJSON(w, http.StatusOK, queryResponse{
		SessionID:   trace.SessionID,
		Intent:      trace.Intent,
		FinalAnswer: trace.FinalAnswer,
		Steps:       trace.Steps,
		AgentsUsed:  trace.AgentsUsed,
		Success:     trace.Success,
	})
}
