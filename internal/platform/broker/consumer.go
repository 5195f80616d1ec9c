package broker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"

	"mealQuote/internal/modules/quotebuilder/domain"
	"mealQuote/internal/shared/normalization"
)

// MessageHandler receives a decoded event together with the kafka topic it was read from.
type MessageHandler func(ctx context.Context, sourceTopic string, msg *domain.Message) error

type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 1 << 20,
		}),
	}
}

// Consume reads until ctx is done. Handler errors are logged and the offset still advances.
func (c *KafkaConsumer) Consume(ctx context.Context, handler MessageHandler) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}
		msg := decodeMessage(m)
		slog.Info("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(ctx, m.Topic, msg); err != nil {
			slog.Warn("kafka handler error", slog.String("topic", m.Topic), slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Entity     string `json:"entity"`
	Action     string `json:"action"`
	ResourceID any    `json:"resourceId"`
	Topic      string `json:"topic"`
	Metadata   any    `json:"metadata"`
	Data       any    `json:"data"`
}

func decodeMessage(m kafka.Message) *domain.Message {
	msg := &domain.Message{Timestamp: m.Time.UTC()}
	if m.Time.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	var event rawEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		entity, action := inferEntityActionFromTopic(m.Topic)
		msg.Entity = domain.NormalizeEntity(entity)
		msg.Action = action
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
		msg.Data = string(m.Value)
		return msg
	}

	inferredEntity, inferredAction := inferEntityActionFromTopic(m.Topic)
	msg.Entity = domain.NormalizeEntity(firstNonEmpty(event.Entity, inferredEntity))
	msg.Action = strings.ToLower(firstNonEmpty(event.Action, inferredAction))
	msg.Metadata = normalization.StringMap(event.Metadata)
	msg.Data = event.Data
	msg.ResourceID = normalization.AsString(event.ResourceID)
	if msg.ResourceID == "" {
		msg.ResourceID = normalization.FirstString(normalization.MapFromPayload(event.Data), "id", "quoteId", "customerId", "productId", "userId")
	}

	if event.Topic != "" {
		msg.Topic = event.Topic
	} else {
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	}
	return msg
}

// inferEntityActionFromTopic reads "<prefix>.<entity>.<action>" topics. A topic with a
// single known segment yields that entity and action "updated".
func inferEntityActionFromTopic(topic string) (string, string) {
	parts := strings.Split(strings.TrimSpace(topic), ".")
	if len(parts) >= 2 {
		entity := strings.TrimSpace(parts[len(parts)-2])
		action := strings.TrimSpace(parts[len(parts)-1])
		if isAction(action) && entity != "" {
			return entity, action
		}
	}
	if entity := normalizeTopic(topic); entity != "" {
		return entity, domain.ActionUpdated
	}
	return "", domain.ActionUpdated
}

func isAction(value string) bool {
	switch strings.ToLower(value) {
	case domain.ActionCreated, domain.ActionUpdated, domain.ActionDeleted:
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func normalizeTopic(topic string) string {
	if idx := strings.LastIndex(topic, "."); idx >= 0 {
		topic = topic[idx+1:]
	}
	return strings.TrimSpace(topic)
}
