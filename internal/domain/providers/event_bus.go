package providers

import (
	"context"

	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

// EventBus publishes and subscribes to query analytics events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.QueryEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.QueryEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelQueriesAnswered is the channel carrying answered-query events
const EventChannelQueriesAnswered = "queries:answered"
