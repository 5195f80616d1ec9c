package broker

import (
	"context"
	"log/slog"

	"mealQuote/internal/modules/quotebuilder/domain"
	"mealQuote/internal/modules/quotebuilder/infrastructure"
)

// StartKafkaConsumers runs one consumer per registered topic until ctx is done.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
) {
	if len(brokers) == 0 {
		slog.Warn("kafka brokers not configured; change feed disabled")
		return
	}
	for _, topic := range registry.Topics() {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			err := consumer.Consume(ctx, func(ctx context.Context, sourceTopic string, msg *domain.Message) error {
				return registry.Dispatch(ctx, sourceTopic, msg)
			})
			slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
		}(topic)
	}
}
