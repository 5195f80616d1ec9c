package infrastructure

import (
	"context"
	"log/slog"

	"mealQuote/internal/modules/quotebuilder/application/port"
	"mealQuote/internal/modules/quotebuilder/domain"
)

// HandlerRegistry routes consumed events to the handler of the kafka topic they arrived on.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, sourceTopic string, msg *domain.Message) error {
	if handler, ok := r.handlers[sourceTopic]; ok {
		return handler.Handle(ctx, msg)
	}
	slog.Debug("no handler for topic", slog.String("topic", sourceTopic))
	return nil
}
