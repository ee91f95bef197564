package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/domain/providers"
)

// AnalyticsService consumes answered-query events off the bus and keeps
// simple in-process tallies. Durable persistence of events is an external
// consumer's job; this exists for the stats endpoint and operational logs.
type AnalyticsService struct {
	bus providers.EventBus

	mu       sync.RWMutex
	total    int64
	failures int64
	byIntent map[entities.IntentType]int64
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(bus providers.EventBus) *AnalyticsService {
	return &AnalyticsService{
		bus:      bus,
		byIntent: make(map[entities.IntentType]int64),
	}
}

// Start subscribes to the query channel and consumes events until the
// context is cancelled
func (s *AnalyticsService) Start(ctx context.Context) error {
	events, err := s.bus.Subscribe(ctx, providers.EventChannelQueriesAnswered)
	if err != nil {
		return err
	}

	go func() {
		for event := range events {
			s.record(event)
		}
	}()

	return nil
}

func (s *AnalyticsService) record(event *entities.QueryEvent) {
	s.mu.Lock()
	s.total++
	if !event.Success {
		s.failures++
	}
	s.byIntent[event.Intent]++
	s.mu.Unlock()

	log.Info().
		Str("session_id", event.SessionID).
		Str("intent", string(event.Intent)).
		Strs("agents", event.AgentsUsed).
		Bool("success", event.Success).
		Int64("duration_ms", event.DurationMs).
		Msg("query answered")
}

// QueryStats is a point-in-time snapshot of the tallies
type QueryStats struct {
	Total    int64                         `json:"total"`
	Failures int64                         `json:"failures"`
	ByIntent map[entities.IntentType]int64 `json:"by_intent"`
}

// Stats returns a snapshot of the current tallies
func (s *AnalyticsService) Stats() QueryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byIntent := make(map[entities.IntentType]int64, len(s.byIntent))
	for intent, count := range s.byIntent {
		byIntent[intent] = count
	}
	return QueryStats{
		Total:    s.total,
		Failures: s.failures,
		ByIntent: byIntent,
	}
}
