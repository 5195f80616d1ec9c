package handler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mealQuote/internal/modules/quotebuilder/application/port"
	"mealQuote/internal/modules/quotebuilder/application/usecase"
	"mealQuote/internal/modules/quotebuilder/domain"
)

// EntityEventHandler applies the change events of one kafka topic: cached reads of the entity are
// dropped and the event is forwarded to websocket notification subscribers.
type EntityEventHandler struct {
	entity         string
	kafkaTopic     string
	allowedActions map[string]struct{}
	cache          *usecase.QueryCache
	broadcastUC    *usecase.BroadcastUseCase
}

func NewEntityEventHandler(entity, kafkaTopic string, allowedActions []string, cache *usecase.QueryCache, broadcastUC *usecase.BroadcastUseCase) *EntityEventHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityEventHandler{
		entity:         domain.NormalizeEntity(entity),
		kafkaTopic:     kafkaTopic,
		allowedActions: actionSet,
		cache:          cache,
		broadcastUC:    broadcastUC,
	}
}

func (h *EntityEventHandler) Topic() string { return h.kafkaTopic }

func (h *EntityEventHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(strings.TrimSpace(msg.Action))]; !ok {
			return nil
		}
	}

	entity := h.entity
	if entity == "" {
		entity = domain.NormalizeEntity(msg.Entity)
	}
	if h.cache != nil && !h.cache.InvalidateEntity(entity, msg.ResourceID) {
		slog.Debug("entity event for uncached entity", slog.String("entity", entity), slog.String("topic", h.kafkaTopic))
	}

	at := msg.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	notification := domain.BuildChangeMessage(entity, msg.Action, msg.ResourceID, msg.Metadata, msg.Data, at)
	slog.Info("entity event applied", slog.String("entity", entity), slog.String("action", notification.Action), slog.String("resourceId", notification.ResourceID))
	if h.broadcastUC != nil {
		h.broadcastUC.Execute(ctx, notification)
	}
	return nil
}

var _ port.TopicHandler = (*EntityEventHandler)(nil)
