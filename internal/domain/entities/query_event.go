package entities

import (
	"time"
)

// QueryEvent is the analytics event emitted after each answered query.
// Persistence of these events is an external consumer's concern.
type QueryEvent struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"session_id"`
	Query      string     `json:"query"`
	Intent     IntentType `json:"intent"`
	AgentsUsed []string   `json:"agents_used"`
	Success    bool       `json:"success"`
	DurationMs int64      `json:"duration_ms"`
	Timestamp  time.Time  `json:"timestamp"`
}
