package transport

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mealQuote/internal/modules/quotebuilder/application/usecase"
	"mealQuote/internal/modules/quotebuilder/domain"
	"mealQuote/internal/modules/quotebuilder/infrastructure"
	"mealQuote/internal/shared/auth"
)

var publicEntities = []string{domain.EntityQuotes, domain.EntityProducts, domain.EntityUsers}

func isPricingTopic(topic string) bool {
	entity := topic
	if idx := strings.Index(topic, "."); idx >= 0 {
		entity = topic[:idx]
	}
	return domain.NormalizeEntity(entity) == domain.EntityPricing
}

func allowPublicTopic(topic string) bool {
	return !isPricingTopic(topic)
}

// notificationTopics resolves the requested entities. Pricing changes are only streamed to
// clients holding a pricing session. A nil result means every topic.
func notificationTopics(raw string, pricingUnlocked bool) []string {
	requested := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if entity := domain.NormalizeEntity(part); entity != "" {
			requested = append(requested, entity)
		}
	}
	if len(requested) == 0 {
		if pricingUnlocked {
			return nil
		}
		return append([]string{}, publicEntities...)
	}

	seen := make(map[string]struct{}, len(requested))
	topics := make([]string, 0, len(requested))
	for _, entity := range requested {
		if entity == domain.EntityPricing && !pricingUnlocked {
			continue
		}
		if _, ok := seen[entity]; ok {
			continue
		}
		seen[entity] = struct{}{}
		topics = append(topics, entity)
	}
	return topics
}

// NewNotificationsWebsocketHandler exposes /ws/notifications?topics=quotes,products and streams
// change events for the requested entities.
func NewNotificationsWebsocketHandler(hub *infrastructure.Hub, gate *usecase.PricingGate, sendBuffer int) echo.HandlerFunc {
	return func(c echo.Context) error {
		unlocked := gate.Authorize(auth.ExtractToken(c.Request(), "token")) == nil
		topics := notificationTopics(c.QueryParam("topics"), unlocked)
		session := websocketSessionID(c)

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("notifications ws upgrade failed", slog.String("ip", c.RealIP()), slog.String("reqID", requestID(c)), slog.Any("error", err))
			return err
		}

		client := infrastructure.NewClient(hub, conn, infrastructure.ChannelNotifications, session, "", sendBuffer, nil)
		if !unlocked {
			client.RestrictTopics(allowPublicTopic)
		}
		announced := topics
		if topics == nil {
			hub.AttachClientToAll(client)
			announced = []string{"*"}
		} else {
			hub.AttachClient(client, topics)
		}

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(domain.BuildConnectedMessage(session, "", infrastructure.ChannelNotifications, announced, time.Now()))
		slog.Info("notifications ws connected", slog.String("sessionId", session), slog.Any("topics", announced), slog.Bool("pricing", unlocked))
		return nil
	}
}
