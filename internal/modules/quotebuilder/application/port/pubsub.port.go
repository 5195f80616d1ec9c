package port

import (
	"context"

	"mealQuote/internal/modules/quotebuilder/domain"
)

// Broadcaster sends messages to connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles the events of one kafka topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// CacheMetrics receives query cache outcomes. Outcome is hit, miss, stale or error.
type CacheMetrics interface {
	ObserveLookup(key, outcome string)
	ObserveInvalidation(key string)
}
