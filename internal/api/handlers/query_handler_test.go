package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adityakhanna/shopwise/internal/api/handlers"
	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

type stubQueryService struct {
	lastQuery   string
	lastSession string
	trace       *entities.Trace
}

func (s *stubQueryService) Process(ctx context.Context, query, sessionID string) *entities.Trace {
	s.lastQuery = query
	s.lastSession = sessionID
	return s.trace
}

func TestQueryHandler_AskQuery_Success(t *testing.T) {
	service := &stubQueryService{trace: &entities.Trace{
		SessionID:   "session-1",
		Intent:      entities.IntentFilteredSearch,
		Steps:       []string{"Orchestrator: analyzing query intent"},
		AgentsUsed:  []string{"filter"},
		FinalAnswer: "**Found 3 products within your constraints:**",
		Success:     true,
	}}
	handler := handlers.NewQueryHandler(service)

	body := `{"query":"Find me laptops under ₹80000","session_id":"session-1"}`
	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.AskQuery(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Find me laptops under ₹80000", service.lastQuery)
	assert.Equal(t, "session-1", service.lastSession)

	var response map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "filtered_search", response["intent"])
	assert.Equal(t, true, response["success"])
	assert.NotEmpty(t, response["final_answer"])
	assert.Equal(t, []interface{}{"filter"}, response["agents_used"])
}

func TestQueryHandler_AskQuery_EmptyQuery(t *testing.T) {
	handler := handlers.NewQueryHandler(&stubQueryService{})

	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(`{"query":"   "}`))
	w := httptest.NewRecorder()

	handler.AskQuery(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryHandler_AskQuery_InvalidPayload(t *testing.T) {
	handler := handlers.NewQueryHandler(&stubQueryService{})

	req := httptest.NewRequest("POST", "/api/query", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handler.AskQuery(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryHandler_AskQuery_TooLong(t *testing.T) {
	handler := handlers.NewQueryHandler(&stubQueryService{})

	long := strings.Repeat("laptops ", 100)
	body, _ := json.Marshal(map[string]string{"query": long})
	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(string(body)))
	w := httptest.NewRecorder()

	handler.AskQuery(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
